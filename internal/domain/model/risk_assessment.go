package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contractwatch/riskengine/internal/domain/event"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/events"
)

// RiskAssessment is the aggregate root recording one scoring of a contract.
type RiskAssessment struct {
	events.Recorder

	assessedAt time.Time
	id         string
	contractID string
	assessedBy string
	result     RiskAssessmentResult
}

// NewRiskAssessment records a fresh assessment of contractID. assessedBy may be
// empty for system-triggered runs.
func NewRiskAssessment(contractID, assessedBy string, result RiskAssessmentResult) (*RiskAssessment, error) {
	if contractID == "" {
		return nil, fmt.Errorf("contract ID is required")
	}
	if result.Score < 0 || result.Score > 10 {
		return nil, fmt.Errorf("risk score must be between 0 and 10, got %.1f", result.Score)
	}
	if result.Level.IsZero() {
		return nil, fmt.Errorf("risk level is required")
	}

	a := &RiskAssessment{
		id:         uuid.NewString(),
		contractID: contractID,
		assessedBy: assessedBy,
		result:     result,
		assessedAt: time.Now().UTC(),
	}

	a.Record(event.NewAssessmentCompleted(
		a.id, a.contractID, result.Score, result.Level.String(),
		result.Recommendations, a.assessedBy, a.assessedAt,
	))

	if result.Level.AtLeast(valueobject.RiskLevelHigh) {
		a.Record(event.NewHighRiskDetected(
			a.id, a.contractID, result.Score, result.Level.String(),
			result.HighFactorNames(), a.assessedAt,
		))
	}

	return a, nil
}

// Reconstruct rebuilds a RiskAssessment from persisted data (no validation, no events).
func Reconstruct(id, contractID, assessedBy string, result RiskAssessmentResult, assessedAt time.Time) *RiskAssessment {
	return &RiskAssessment{
		id:         id,
		contractID: contractID,
		assessedBy: assessedBy,
		result:     result,
		assessedAt: assessedAt,
	}
}

func (a *RiskAssessment) ID() string                   { return a.id }
func (a *RiskAssessment) ContractID() string           { return a.contractID }
func (a *RiskAssessment) AssessedBy() string           { return a.assessedBy }
func (a *RiskAssessment) AssessedAt() time.Time        { return a.assessedAt }
func (a *RiskAssessment) Result() RiskAssessmentResult { return a.result }
func (a *RiskAssessment) Score() float64               { return a.result.Score }
func (a *RiskAssessment) Level() valueobject.RiskLevel { return a.result.Level }
func (a *RiskAssessment) Factors() []RiskFactor        { return a.result.Factors }
func (a *RiskAssessment) Recommendations() []string    { return a.result.Recommendations }

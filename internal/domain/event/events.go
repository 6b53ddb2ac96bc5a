package event

import (
	"time"

	"github.com/contractwatch/riskengine/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted when a contract risk assessment finishes.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment lands at high or critical.
	EventTypeHighRiskDetected = "risk.high_risk.detected"

	AggregateTypeRiskAssessment = "RiskAssessment"
)

// AssessmentCompleted is published whenever a contract has been scored.
type AssessmentCompleted struct {
	events.BaseEvent `json:"-"`

	AssessmentID    string    `json:"assessment_id"`
	ContractID      string    `json:"contract_id"`
	RiskScore       float64   `json:"risk_score"`
	RiskLevel       string    `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
	AssessedBy      string    `json:"assessed_by,omitempty"`
	AssessedAt      time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted creates an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID, contractID string,
	score float64,
	level string,
	recommendations []string,
	assessedBy string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:       events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateTypeRiskAssessment),
		AssessmentID:    assessmentID,
		ContractID:      contractID,
		RiskScore:       score,
		RiskLevel:       level,
		Recommendations: recommendations,
		AssessedBy:      assessedBy,
		AssessedAt:      assessedAt,
	}
}

// HighRiskDetected is published when a contract is assessed at high risk or
// above, so reviewers can be alerted.
type HighRiskDetected struct {
	events.BaseEvent `json:"-"`

	AssessmentID string    `json:"assessment_id"`
	ContractID   string    `json:"contract_id"`
	RiskScore    float64   `json:"risk_score"`
	RiskLevel    string    `json:"risk_level"`
	HighFactors  []string  `json:"high_factors"`
	DetectedAt   time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(
	assessmentID, contractID string,
	score float64,
	level string,
	highFactors []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateTypeRiskAssessment),
		AssessmentID: assessmentID,
		ContractID:   contractID,
		RiskScore:    score,
		RiskLevel:    level,
		HighFactors:  highFactors,
		DetectedAt:   detectedAt,
	}
}

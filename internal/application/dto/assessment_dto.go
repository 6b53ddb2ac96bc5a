package dto

import (
	"time"

	"github.com/contractwatch/riskengine/internal/domain/model"
)

// FactorResponse is one scored risk factor.
type FactorResponse struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description" yaml:"description"`
}

// EvaluationResponse is the ephemeral result of scoring a contract.
type EvaluationResponse struct {
	Score           float64          `json:"score" yaml:"score"`
	Level           string           `json:"level" yaml:"level"`
	Factors         []FactorResponse `json:"factors" yaml:"factors"`
	Recommendations []string         `json:"recommendations" yaml:"recommendations"`
}

// AssessmentResponse is a stored assessment of a contract.
type AssessmentResponse struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	AssessedBy string    `json:"assessed_by,omitempty"`
	AssessedAt time.Time `json:"assessed_at"`
	EvaluationResponse
}

// AssessContractRequest triggers a stored assessment for a contract.
type AssessContractRequest struct {
	ContractID string `json:"contract_id"`
	AssessedBy string `json:"assessed_by,omitempty"`
}

// FromResult maps an engine result to its response DTO.
func FromResult(r model.RiskAssessmentResult) EvaluationResponse {
	factors := make([]FactorResponse, 0, len(r.Factors))
	for _, f := range r.Factors {
		factors = append(factors, FactorResponse(f))
	}
	return EvaluationResponse{
		Score:           r.Score,
		Level:           r.Level.String(),
		Factors:         factors,
		Recommendations: r.Recommendations,
	}
}

// FromModel maps a stored assessment to the response DTO.
func FromModel(a *model.RiskAssessment) AssessmentResponse {
	return AssessmentResponse{
		ID:                 a.ID(),
		ContractID:         a.ContractID(),
		AssessedBy:         a.AssessedBy(),
		AssessedAt:         a.AssessedAt(),
		EvaluationResponse: FromResult(a.Result()),
	}
}

package usecase

import (
	"context"
	"fmt"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/port"
)

// GetAssessment is the use case for retrieving the latest assessment of a contract.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves the most recent assessment for contractID.
func (uc *GetAssessment) Execute(ctx context.Context, contractID string) (_ dto.AssessmentResponse, err error) {
	ctx, span := tracer.Start(ctx, "GetAssessment")
	defer func() { finishSpan(span, err) }()

	if contractID == "" {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: contract ID is required", ErrInvalidInput)
	}

	assessment, err := uc.repo.FindLatestByContractID(ctx, contractID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("assessment for contract %s: %w", contractID, ErrNotFound)
	}

	return dto.FromModel(assessment), nil
}

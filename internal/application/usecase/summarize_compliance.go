package usecase

import (
	"context"
	"fmt"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

// SummarizeCompliance aggregates stored compliance checks per rule category.
type SummarizeCompliance struct {
	checks port.ComplianceCheckRepository
}

// NewSummarizeCompliance creates a new SummarizeCompliance use case.
func NewSummarizeCompliance(checks port.ComplianceCheckRepository) *SummarizeCompliance {
	return &SummarizeCompliance{checks: checks}
}

// Execute summarizes checks for contractID, or across all contracts when it is empty.
func (uc *SummarizeCompliance) Execute(ctx context.Context, contractID string) (_ dto.ComplianceSummaryResponse, err error) {
	ctx, span := tracer.Start(ctx, "SummarizeCompliance")
	defer func() { finishSpan(span, err) }()

	checks, err := uc.checks.List(ctx, contractID)
	if err != nil {
		return dto.ComplianceSummaryResponse{}, fmt.Errorf("failed to list compliance checks: %w", err)
	}

	return dto.ComplianceSummaryResponse{
		ContractID: contractID,
		Categories: service.SummarizeCompliance(checks),
	}, nil
}

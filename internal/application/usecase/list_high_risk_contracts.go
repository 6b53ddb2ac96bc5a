package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// ListHighRiskContracts lists the contracts counted by the dashboard's
// highRiskContracts KPI: stored level exactly high, critical excluded.
type ListHighRiskContracts struct {
	contracts port.ContractRepository
}

// NewListHighRiskContracts creates a new ListHighRiskContracts use case.
func NewListHighRiskContracts(contracts port.ContractRepository) *ListHighRiskContracts {
	return &ListHighRiskContracts{contracts: contracts}
}

// Execute returns high-risk contracts, highest score first.
func (uc *ListHighRiskContracts) Execute(ctx context.Context) (_ []dto.ContractSummary, err error) {
	ctx, span := tracer.Start(ctx, "ListHighRiskContracts")
	defer func() { finishSpan(span, err) }()

	contracts, err := uc.contracts.ListByRiskLevel(ctx, valueobject.RiskLevelHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to list high-risk contracts: %w", err)
	}

	slices.SortStableFunc(contracts, func(a, b model.Contract) int {
		return cmp.Compare(storedScore(b), storedScore(a))
	})

	out := make([]dto.ContractSummary, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, dto.FromContract(c))
	}
	return out, nil
}

func storedScore(c model.Contract) float64 {
	if c.RiskScore == nil {
		return -1
	}
	return *c.RiskScore
}

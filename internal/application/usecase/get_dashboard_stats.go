package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

// GetDashboardStats computes portfolio KPIs from stored contracts and checks.
type GetDashboardStats struct {
	contracts port.ContractRepository
	checks    port.ComplianceCheckRepository
}

// NewGetDashboardStats creates a new GetDashboardStats use case.
func NewGetDashboardStats(contracts port.ContractRepository, checks port.ComplianceCheckRepository) *GetDashboardStats {
	return &GetDashboardStats{contracts: contracts, checks: checks}
}

// Execute loads contracts and checks concurrently and aggregates them.
func (uc *GetDashboardStats) Execute(ctx context.Context) (_ dto.DashboardStatsResponse, err error) {
	ctx, span := tracer.Start(ctx, "GetDashboardStats")
	defer func() { finishSpan(span, err) }()

	var (
		contracts []model.Contract
		checks    []model.ComplianceCheck
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if contracts, err = uc.contracts.List(gctx); err != nil {
			return fmt.Errorf("failed to list contracts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if checks, err = uc.checks.List(gctx, ""); err != nil {
			return fmt.Errorf("failed to list compliance checks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	return service.ComputeDashboardStats(contracts, checks), nil
}

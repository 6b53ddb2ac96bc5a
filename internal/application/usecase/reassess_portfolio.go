package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/port"
)

// ReassessReport summarizes one portfolio run.
type ReassessReport struct {
	Assessed int `json:"assessed"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ReassessPortfolio re-runs AssessContract for every contract still in its
// working lifecycle. Individual failures are logged and counted.
type ReassessPortfolio struct {
	contracts port.ContractRepository
	assess    *AssessContract
	logger    *slog.Logger
}

// NewReassessPortfolio creates a new ReassessPortfolio use case.
func NewReassessPortfolio(contracts port.ContractRepository, assess *AssessContract, logger *slog.Logger) *ReassessPortfolio {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReassessPortfolio{contracts: contracts, assess: assess, logger: logger}
}

// Execute walks the portfolio. It stops early only when ctx is canceled or the
// contract list cannot be loaded.
func (uc *ReassessPortfolio) Execute(ctx context.Context) (_ ReassessReport, err error) {
	ctx, span := tracer.Start(ctx, "ReassessPortfolio")
	defer func() { finishSpan(span, err) }()

	contracts, err := uc.contracts.List(ctx)
	if err != nil {
		return ReassessReport{}, fmt.Errorf("failed to list contracts: %w", err)
	}

	var report ReassessReport
	for _, c := range contracts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if c.Status.IsTerminal() {
			report.Skipped++
			continue
		}

		if _, err := uc.assess.Execute(ctx, dto.AssessContractRequest{ContractID: c.ID}); err != nil {
			report.Failed++
			uc.logger.ErrorContext(ctx, "reassessment failed",
				slog.String("contract_id", c.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Assessed++
	}

	uc.logger.InfoContext(ctx, "portfolio reassessed",
		slog.Int("assessed", report.Assessed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

// AssessContract scores a stored contract, records the assessment together
// with the contract's new score and level, and publishes the resulting events.
type AssessContract struct {
	contracts   port.ContractRepository
	assessments port.AssessmentRepository
	publisher   port.EventPublisher
	metrics     port.AssessmentMetrics
	engine      service.RiskEngine
	logger      *slog.Logger
}

// NewAssessContract creates a new AssessContract use case. metrics may be nil.
func NewAssessContract(
	contracts port.ContractRepository,
	assessments port.AssessmentRepository,
	publisher port.EventPublisher,
	metrics port.AssessmentMetrics,
	engine service.RiskEngine,
	logger *slog.Logger,
) *AssessContract {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessContract{
		contracts:   contracts,
		assessments: assessments,
		publisher:   publisher,
		metrics:     metrics,
		engine:      engine,
		logger:      logger,
	}
}

// Execute runs a full assessment for req.ContractID.
func (uc *AssessContract) Execute(ctx context.Context, req dto.AssessContractRequest) (_ dto.AssessmentResponse, err error) {
	ctx, span := tracer.Start(ctx, "AssessContract")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("contract.id", req.ContractID))

	if req.ContractID == "" {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: contract ID is required", ErrInvalidInput)
	}

	contract, err := uc.contracts.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to load contract: %w", err)
	}

	result := uc.engine.AssessContract(contract)

	assessment, err := model.NewRiskAssessment(contract.ID, req.AssessedBy, result)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	if err := uc.assessments.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	if evts := assessment.Drain(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.RecordAssessment(ctx, result.Level, result.Score)
	}

	span.SetAttributes(
		attribute.Float64("risk.score", result.Score),
		attribute.String("risk.level", result.Level.String()),
	)
	uc.logger.InfoContext(ctx, "contract assessed",
		slog.String("contract_id", contract.ID),
		slog.Float64("score", result.Score),
		slog.String("level", result.Level.String()),
	)

	return dto.FromModel(assessment), nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/service"
)

// EvaluateContract scores an inline contract without touching storage.
type EvaluateContract struct {
	engine service.RiskEngine
}

// NewEvaluateContract creates a new EvaluateContract use case.
func NewEvaluateContract(engine service.RiskEngine) *EvaluateContract {
	return &EvaluateContract{engine: engine}
}

// Execute converts the input and runs the engine.
func (uc *EvaluateContract) Execute(ctx context.Context, in dto.ContractInput) (_ dto.EvaluationResponse, err error) {
	_, span := tracer.Start(ctx, "EvaluateContract")
	defer func() { finishSpan(span, err) }()

	contract, err := in.ToModel()
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return dto.FromResult(uc.engine.AssessContract(contract)), nil
}

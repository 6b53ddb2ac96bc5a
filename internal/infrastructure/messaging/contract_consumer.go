package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/application/usecase"
	pkgkafka "github.com/contractwatch/riskengine/pkg/kafka"
)

// Contract lifecycle event types that trigger a re-assessment.
const (
	EventTypeContractCreated = "contract.created"
	EventTypeContractUpdated = "contract.updated"
)

// ContractAssessor runs a stored-contract assessment.
type ContractAssessor interface {
	Execute(ctx context.Context, req dto.AssessContractRequest) (dto.AssessmentResponse, error)
}

type contractEvent struct {
	EventType  string `json:"event_type"`
	ContractID string `json:"contract_id"`
	UpdatedBy  string `json:"updated_by"`
}

// ContractEventHandler reassesses contracts when they are created or changed.
type ContractEventHandler struct {
	assessor ContractAssessor
	logger   *slog.Logger
}

// NewContractEventHandler creates a handler for the contract events topic.
func NewContractEventHandler(assessor ContractAssessor, logger *slog.Logger) *ContractEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContractEventHandler{assessor: assessor, logger: logger}
}

// Handle processes one contract event. Malformed messages and contracts that
// no longer exist are logged and dropped; any other failure is returned so
// the message is not committed.
func (h *ContractEventHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var evt contractEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed contract event", slog.String("error", err.Error()))
		return nil
	}
	if t := msg.Headers[HeaderEventType]; t != "" {
		evt.EventType = t
	}

	switch evt.EventType {
	case EventTypeContractCreated, EventTypeContractUpdated:
	default:
		h.logger.DebugContext(ctx, "ignoring contract event", slog.String("event_type", evt.EventType))
		return nil
	}

	if evt.ContractID == "" {
		h.logger.WarnContext(ctx, "dropping contract event without contract_id", slog.String("event_type", evt.EventType))
		return nil
	}

	resp, err := h.assessor.Execute(ctx, dto.AssessContractRequest{
		ContractID: evt.ContractID,
		AssessedBy: evt.UpdatedBy,
	})
	if errors.Is(err, usecase.ErrNotFound) {
		h.logger.WarnContext(ctx, "contract from event not found", slog.String("contract_id", evt.ContractID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to assess contract %s: %w", evt.ContractID, err)
	}

	h.logger.InfoContext(ctx, "contract reassessed from event",
		slog.String("event_type", evt.EventType),
		slog.String("contract_id", evt.ContractID),
		slog.String("risk_level", resp.Level),
	)
	return nil
}

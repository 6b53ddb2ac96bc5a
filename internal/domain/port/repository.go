package port

import (
	"context"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/events"
)

// ContractRepository is the read side of the contract store.
type ContractRepository interface {
	// FindByID returns the contract or an error wrapping ErrNotFound.
	FindByID(ctx context.Context, id string) (model.Contract, error)

	// List returns every contract.
	List(ctx context.Context) ([]model.Contract, error)

	// ListByRiskLevel returns contracts whose stored level equals level,
	// highest stored score first.
	ListByRiskLevel(ctx context.Context, level valueobject.RiskLevel) ([]model.Contract, error)
}

// ComplianceCheckRepository reads compliance check outcomes with their rule category.
type ComplianceCheckRepository interface {
	// List returns checks for contractID, or all checks when contractID is empty.
	List(ctx context.Context, contractID string) ([]model.ComplianceCheck, error)
}

// AssessmentRepository persists risk assessments.
type AssessmentRepository interface {
	// Save stores the assessment and writes its score and level back onto the
	// assessed contract in one transaction. A missing contract yields ErrNotFound.
	Save(ctx context.Context, assessment *model.RiskAssessment) error

	// FindLatestByContractID returns the most recent assessment or an error wrapping ErrNotFound.
	FindLatestByContractID(ctx context.Context, contractID string) (*model.RiskAssessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// AssessmentMetrics records assessment outcomes.
type AssessmentMetrics interface {
	RecordAssessment(ctx context.Context, level valueobject.RiskLevel, score float64)
}

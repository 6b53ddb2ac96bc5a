package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/port"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/events"
	"github.com/contractwatch/riskengine/pkg/money"
	"github.com/contractwatch/riskengine/pkg/testutil"
)

// --- Mock implementations ---

type mockContractRepository struct {
	mu        sync.Mutex
	contracts map[string]model.Contract
	listErr   error
}

func newMockContractRepository(contracts ...model.Contract) *mockContractRepository {
	m := &mockContractRepository{
		contracts: make(map[string]model.Contract),
	}
	for _, c := range contracts {
		m.contracts[c.ID] = c
	}
	return m
}

func (m *mockContractRepository) FindByID(_ context.Context, id string) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok {
		return model.Contract{}, fmt.Errorf("contract %s: %w", id, port.ErrNotFound)
	}
	return c, nil
}

func (m *mockContractRepository) List(_ context.Context) ([]model.Contract, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Contract, 0, len(m.contracts))
	for _, id := range []string{testutil.TestContractID1, testutil.TestContractID2, testutil.TestContractID3} {
		if c, ok := m.contracts[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockContractRepository) ListByRiskLevel(ctx context.Context, level valueobject.RiskLevel) ([]model.Contract, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Contract
	for _, c := range all {
		if c.RiskLevel == level {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockComplianceCheckRepository struct {
	checks  []model.ComplianceCheck
	listErr error
}

func (m *mockComplianceCheckRepository) List(_ context.Context, contractID string) ([]model.ComplianceCheck, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if contractID == "" {
		return m.checks, nil
	}
	var out []model.ComplianceCheck
	for _, c := range m.checks {
		if c.ContractID == contractID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockAssessmentRepository struct {
	mu       sync.Mutex
	saved    []*model.RiskAssessment
	saveFunc func(ctx context.Context, a *model.RiskAssessment) error
	findFunc func(ctx context.Context, contractID string) (*model.RiskAssessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.RiskAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) savedFor(contractID string) *model.RiskAssessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.saved {
		if a.ContractID() == contractID {
			return a
		}
	}
	return nil
}

func (m *mockAssessmentRepository) FindLatestByContractID(ctx context.Context, contractID string) (*model.RiskAssessment, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, contractID)
	}
	return nil, fmt.Errorf("assessment for %s: %w", contractID, port.ErrNotFound)
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockMetrics struct {
	levels []valueobject.RiskLevel
}

func (m *mockMetrics) RecordAssessment(_ context.Context, level valueobject.RiskLevel, _ float64) {
	m.levels = append(m.levels, level)
}

// --- Fixtures ---

func constructionContract() model.Contract {
	return model.Contract{
		ID:        testutil.TestContractID1,
		Vendor:    "Initech",
		Category:  "Construction",
		Value:     money.New(decimal.NewFromInt(1_200_000), money.EUR),
		Status:    valueobject.ContractStatusActive,
		StartDate: testutil.DatePtr(2024, 1, 1),
		EndDate:   testutil.DatePtr(2027, 1, 1),
	}
}

func officeSuppliesContract() model.Contract {
	return model.Contract{
		ID:        testutil.TestContractID2,
		Vendor:    "Microsoft",
		Category:  "Office Supplies",
		Value:     money.New(decimal.NewFromInt(20_000), money.EUR),
		Status:    valueobject.ContractStatusUnderReview,
		StartDate: testutil.DatePtr(2024, 1, 1),
		EndDate:   testutil.DatePtr(2024, 7, 1),
	}
}

func completedContract() model.Contract {
	return model.Contract{
		ID:     testutil.TestContractID3,
		Vendor: "Globex",
		Value:  money.New(decimal.NewFromInt(5_000), money.EUR),
		Status: valueobject.ContractStatusCompleted,
	}
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/application/usecase"
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/service"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/testutil"
)

func TestEvaluateContract_Execute(t *testing.T) {
	uc := usecase.NewEvaluateContract(service.DefaultRiskEngine())

	t.Run("sparse draft scores medium", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ContractInput{
			Vendor: "Acme Supplies",
			Value:  dto.Amount{Decimal: decimal.NewFromInt(10_000)},
		})
		require.NoError(t, err)
		testutil.AssertScore(t, 4.4, resp.Score)
		assert.Equal(t, "medium", resp.Level)
		assert.Len(t, resp.Factors, 4)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.ContractInput{Status: "archived"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})
}

func TestGetAssessment_Execute(t *testing.T) {
	t.Run("returns latest assessment", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		stored := model.Reconstruct("a-1", testutil.TestContractID1, "auditor",
			service.DefaultRiskEngine().AssessContract(constructionContract()), at)

		repo := &mockAssessmentRepository{
			findFunc: func(_ context.Context, contractID string) (*model.RiskAssessment, error) {
				assert.Equal(t, testutil.TestContractID1, contractID)
				return stored, nil
			},
		}

		resp, err := usecase.NewGetAssessment(repo).Execute(context.Background(), testutil.TestContractID1)
		require.NoError(t, err)
		assert.Equal(t, "a-1", resp.ID)
		assert.Equal(t, at, resp.AssessedAt)
		assert.Equal(t, "high", resp.Level)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := usecase.NewGetAssessment(&mockAssessmentRepository{}).Execute(context.Background(), "missing")
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("nil assessment maps to not found", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findFunc: func(context.Context, string) (*model.RiskAssessment, error) { return nil, nil },
		}
		_, err := usecase.NewGetAssessment(repo).Execute(context.Background(), "c")
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}

func complianceChecks() []model.ComplianceCheck {
	return []model.ComplianceCheck{
		{ContractID: testutil.TestContractID1, Status: valueobject.ComplianceStatusCompliant, RuleCategory: "Security"},
		{ContractID: testutil.TestContractID1, Status: valueobject.ComplianceStatusNonCompliant, RuleCategory: "Security"},
		{ContractID: testutil.TestContractID2, Status: valueobject.ComplianceStatusCompliant, RuleCategory: "Docs"},
	}
}

func TestSummarizeCompliance_Execute(t *testing.T) {
	uc := usecase.NewSummarizeCompliance(&mockComplianceCheckRepository{checks: complianceChecks()})

	all, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []model.ComplianceCategorySummary{
		{Name: "Security", Compliant: 1, Total: 2, Percentage: 50},
		{Name: "Docs", Compliant: 1, Total: 1, Percentage: 100},
	}, all.Categories)

	scoped, err := uc.Execute(context.Background(), testutil.TestContractID2)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestContractID2, scoped.ContractID)
	require.Len(t, scoped.Categories, 1)
	assert.Equal(t, "Docs", scoped.Categories[0].Name)

	failing := usecase.NewSummarizeCompliance(&mockComplianceCheckRepository{listErr: errors.New("timeout")})
	_, err = failing.Execute(context.Background(), "")
	testutil.AssertErrorContains(t, err, "failed to list compliance checks")
}

func TestGetDashboardStats_Execute(t *testing.T) {
	high := constructionContract()
	high.RiskLevel = valueobject.RiskLevelHigh
	contracts := newMockContractRepository(high, officeSuppliesContract(), completedContract())

	uc := usecase.NewGetDashboardStats(contracts, &mockComplianceCheckRepository{checks: complianceChecks()})

	stats, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalContracts)
	assert.Equal(t, 1, stats.ActiveContracts)
	assert.Equal(t, 1, stats.HighRiskContracts)
	assert.Equal(t, 1, stats.PendingReviews)
	assert.InDelta(t, 66.7, stats.ComplianceScore, 1e-9)
}

func TestGetDashboardStats_LoadFailure(t *testing.T) {
	contracts := newMockContractRepository()
	contracts.listErr = errors.New("connection reset")

	uc := usecase.NewGetDashboardStats(contracts, &mockComplianceCheckRepository{})
	_, err := uc.Execute(context.Background())
	testutil.AssertErrorContains(t, err, "failed to list contracts")
}

func TestReassessPortfolio_Execute(t *testing.T) {
	contracts := newMockContractRepository(constructionContract(), officeSuppliesContract(), completedContract())
	repo := &mockAssessmentRepository{}
	assess := usecase.NewAssessContract(contracts, repo, &mockEventPublisher{}, nil, service.DefaultRiskEngine(), nil)

	report, err := usecase.NewReassessPortfolio(contracts, assess, nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.ReassessReport{Assessed: 2, Skipped: 1}, report)
	assert.NotNil(t, repo.savedFor(testutil.TestContractID1))
	assert.NotNil(t, repo.savedFor(testutil.TestContractID2))
	assert.Nil(t, repo.savedFor(testutil.TestContractID3))
}

func TestReassessPortfolio_CountsFailures(t *testing.T) {
	contracts := newMockContractRepository(constructionContract(), officeSuppliesContract())
	repo := &mockAssessmentRepository{
		saveFunc: func(context.Context, *model.RiskAssessment) error { return errors.New("row locked") },
	}
	assess := usecase.NewAssessContract(contracts, repo, &mockEventPublisher{}, nil, service.DefaultRiskEngine(), nil)

	report, err := usecase.NewReassessPortfolio(contracts, assess, nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.ReassessReport{Failed: 2}, report)
}

func TestReassessPortfolio_Canceled(t *testing.T) {
	contracts := newMockContractRepository(constructionContract())
	assess := usecase.NewAssessContract(contracts, &mockAssessmentRepository{}, &mockEventPublisher{}, nil, service.DefaultRiskEngine(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := usecase.NewReassessPortfolio(contracts, assess, nil).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

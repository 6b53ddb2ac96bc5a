package service_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/service"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/money"
	"github.com/contractwatch/riskengine/pkg/testutil"
)

func eur(amount int64) money.Money {
	return money.New(decimal.NewFromInt(amount), money.EUR)
}

// constructionContract is a large, long-running construction job with an unknown vendor.
func constructionContract() model.Contract {
	return model.Contract{
		ID:        testutil.TestContractID1,
		Vendor:    "Initech",
		Category:  "Construction",
		Value:     eur(1_200_000),
		Status:    valueobject.ContractStatusActive,
		StartDate: testutil.DatePtr(2024, 1, 1),
		EndDate:   testutil.DatePtr(2027, 1, 1),
	}
}

// sparseDraft is a small draft with no category and no schedule.
func sparseDraft() model.Contract {
	return model.Contract{
		ID:     testutil.TestContractID2,
		Vendor: "Acme Supplies",
		Value:  eur(10_000),
		Status: valueobject.ContractStatusDraft,
	}
}

func TestAssessContract_LargeConstruction(t *testing.T) {
	result := service.DefaultRiskEngine().AssessContract(constructionContract())

	require.Len(t, result.Factors, 5)
	values := map[string]float64{}
	for _, f := range result.Factors {
		values[f.Name] = f.Value
	}
	assert.Equal(t, 8.0, values[model.FactorContractValue])
	assert.Equal(t, 7.0, values[model.FactorContractDuration])
	assert.Equal(t, 5.0, values[model.FactorVendorRisk])
	assert.Equal(t, 8.0, values[model.FactorCategoryRisk])
	assert.Equal(t, 3.0, values[model.FactorComplianceRisk])

	testutil.AssertScore(t, 6.0, result.Score)
	assert.Equal(t, valueobject.RiskLevelHigh, result.Level)

	assert.Equal(t, []string{
		service.RecAdditionalApproval,
		service.RecEnhancedMonitoring,
		service.RecCategoryChecks,
		service.RecSubjectMatterExperts,
		service.RecSeniorApproval,
		service.RecWeeklyMonitoring,
		service.RecLegalReview,
	}, result.Recommendations)
	assert.NotContains(t, result.Recommendations, service.RecVendorDueDiligence)
}

func TestAssessContract_SparseDraft(t *testing.T) {
	result := service.DefaultRiskEngine().AssessContract(sparseDraft())

	require.Len(t, result.Factors, 4)
	names := make([]string, 0, len(result.Factors))
	for _, f := range result.Factors {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		model.FactorContractValue, model.FactorVendorRisk,
		model.FactorCategoryRisk, model.FactorComplianceRisk,
	}, names)

	assert.Equal(t, 2.0, result.Factors[0].Value)
	assert.Equal(t, 3.0, result.Factors[2].Value)
	assert.Equal(t, "Category: General", result.Factors[2].Description)
	assert.Equal(t, 7.0, result.Factors[3].Value)

	testutil.AssertScore(t, 4.4, result.Score)
	assert.Equal(t, valueobject.RiskLevelMedium, result.Level)
	assert.Equal(t, []string{service.RecStandardMonitoring, service.RecRegularMilestoneCheck}, result.Recommendations)
}

func TestAssessContract_LevelUsesUnroundedMean(t *testing.T) {
	c := model.Contract{
		ID:        testutil.TestContractID3,
		Vendor:    "Initech",
		Category:  "Consulting",
		Value:     eur(1_200_000),
		Status:    valueobject.ContractStatusActive,
		StartDate: testutil.DatePtr(2024, 1, 1),
		EndDate:   testutil.DatePtr(2025, 6, 1),
	}

	result := service.DefaultRiskEngine().AssessContract(c)

	// 8*.25 + 3*.15 + 5*.20 + 5*.15 + 3*.25 = 4.95
	testutil.AssertScore(t, 5.0, result.Score)
	assert.Equal(t, valueobject.RiskLevelMedium, result.Level)
	assert.Equal(t, []string{service.RecAdditionalApproval, service.RecEnhancedMonitoring}, result.Recommendations)
}

func TestAssessContract_Deterministic(t *testing.T) {
	engine := service.DefaultRiskEngine()
	c := constructionContract()

	first := engine.AssessContract(c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.AssessContract(c))
	}
}

func TestAssessContract_ConcurrentUse(t *testing.T) {
	engine := service.DefaultRiskEngine()
	want := engine.AssessContract(constructionContract())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := engine.AssessContract(constructionContract())
			assert.Equal(t, want.Score, got.Score)
			assert.Equal(t, want.Recommendations, got.Recommendations)
		}()
	}
	wg.Wait()
}

func TestAssessContract_DraftSecurityWork(t *testing.T) {
	c := constructionContract()
	c.Status = valueobject.ContractStatusDraft
	c.Category = "Security"
	c.Vendor = "Unknown Holdings"

	// 8*.25 + 7*.15 + 5*.20 + 7*.15 + 5*.25 = 6.35
	result := service.DefaultRiskEngine().AssessContract(c)
	testutil.AssertScore(t, 6.4, result.Score)
	assert.Equal(t, valueobject.RiskLevelHigh, result.Level)
}

func TestNewRiskEngine_CustomRules(t *testing.T) {
	rules := service.DefaultRules()
	rules.TrustedVendors = append(rules.TrustedVendors, "Initech")
	rules.CategoryRisk["Construction"] = 9

	engine, err := service.NewRiskEngine(rules)
	require.NoError(t, err)

	factors := engine.ComputeFactors(constructionContract())
	assert.Equal(t, 2.0, factors[2].Value)
	assert.Equal(t, 9.0, factors[3].Value)

	rules.CategoryRisk["Construction"] = 1
	assert.Equal(t, 9.0, engine.ComputeFactors(constructionContract())[3].Value, "engine must not share the caller's map")

	copied := engine.Rules()
	copied.CategoryRisk["Construction"] = 0
	assert.Equal(t, 9.0, engine.Rules().CategoryRisk["Construction"])
}

func TestNewRiskEngine_UnsortedBands(t *testing.T) {
	rules := service.DefaultRules()
	rules.ValueBands = []service.ValueBand{
		{Min: decimal.NewFromInt(50_000), Risk: 3},
		{Min: decimal.NewFromInt(1_000_000), Risk: 8},
	}

	engine, err := service.NewRiskEngine(rules)
	require.NoError(t, err)
	assert.Equal(t, 8.0, engine.ComputeFactors(constructionContract())[0].Value)
}

func TestNewRiskEngine_InvalidRules(t *testing.T) {
	rules := service.DefaultRules()
	rules.Weights.Vendor = 0
	rules.CategoryRisk["Security"] = 11

	_, err := service.NewRiskEngine(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight vendor")
	assert.Contains(t, err.Error(), "category risk Security")
}

func TestNewRiskEngine_InvalidPenaltiesAndDefaultCategory(t *testing.T) {
	rules := service.DefaultRules()
	rules.DraftPenalty = -1
	rules.MissingDatesPenalty = 12
	rules.MissingCategoryPenalty = -0.5
	rules.DefaultCategory = "Misc"

	_, err := service.NewRiskEngine(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft penalty")
	assert.Contains(t, err.Error(), "missing dates penalty")
	assert.Contains(t, err.Error(), "missing category penalty")
	assert.Contains(t, err.Error(), `default category "Misc" has no category risk`)
}

package service

import (
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// Recommendation texts.
const (
	RecAdditionalApproval    = "Consider additional approval layers due to high contract value"
	RecEnhancedMonitoring    = "Implement enhanced monitoring and milestone tracking"
	RecVendorDueDiligence    = "Conduct thorough vendor due diligence"
	RecPerformanceBonds      = "Consider performance bonds or guarantees"
	RecCategoryChecks        = "Apply category-specific compliance checks"
	RecSubjectMatterExperts  = "Involve subject matter experts in review process"
	RecSeniorApproval        = "Require senior management approval"
	RecWeeklyMonitoring      = "Implement weekly progress monitoring"
	RecLegalReview           = "Consider legal review for all amendments"
	RecStandardMonitoring    = "Standard monitoring procedures apply"
	RecRegularMilestoneCheck = "Regular milestone reviews recommended"
)

// factorRecommendations lists the messages a high-risk factor triggers.
// Duration and Compliance factors never trigger messages of their own.
var factorRecommendations = map[string][]string{
	model.FactorContractValue: {RecAdditionalApproval, RecEnhancedMonitoring},
	model.FactorVendorRisk:    {RecVendorDueDiligence, RecPerformanceBonds},
	model.FactorCategoryRisk:  {RecCategoryChecks, RecSubjectMatterExperts},
}

var (
	elevatedLevelRecommendations = []string{RecSeniorApproval, RecWeeklyMonitoring, RecLegalReview}
	fallbackRecommendations      = []string{RecStandardMonitoring, RecRegularMilestoneCheck}
)

// GenerateRecommendations derives advice from high-risk factors, in factor
// order, followed by level-driven advice for high and critical levels. When
// nothing applies the standard fallback pair is returned.
func GenerateRecommendations(factors []model.RiskFactor, level valueobject.RiskLevel) []string {
	var recs []string

	for _, f := range factors {
		if !f.IsHigh() {
			continue
		}
		recs = append(recs, factorRecommendations[f.Name]...)
	}

	if level.AtLeast(valueobject.RiskLevelHigh) {
		recs = append(recs, elevatedLevelRecommendations...)
	}

	if len(recs) == 0 {
		return append([]string(nil), fallbackRecommendations...)
	}
	return recs
}

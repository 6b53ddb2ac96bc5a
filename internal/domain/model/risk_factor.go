package model

import "github.com/contractwatch/riskengine/internal/domain/valueobject"

// Factor names.
const (
	FactorContractValue    = "Contract Value"
	FactorContractDuration = "Contract Duration"
	FactorVendorRisk       = "Vendor Risk"
	FactorCategoryRisk     = "Category Risk"
	FactorComplianceRisk   = "Compliance Risk"
)

// HighFactorThreshold is the factor value at or above which a factor counts as high risk.
const HighFactorThreshold = 6.0

// RiskFactor is one weighted contributor to a contract's risk score.
// Value is on the 0-10 scale; Weight is in (0,1].
type RiskFactor struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description" yaml:"description"`
}

// IsHigh reports whether the factor triggers factor-specific recommendations.
func (f RiskFactor) IsHigh() bool {
	return f.Value >= HighFactorThreshold
}

// RiskAssessmentResult is the ephemeral output of scoring one contract.
type RiskAssessmentResult struct {
	Score           float64               `json:"score" yaml:"score"`
	Level           valueobject.RiskLevel `json:"level" yaml:"level"`
	Factors         []RiskFactor          `json:"factors" yaml:"factors"`
	Recommendations []string              `json:"recommendations" yaml:"recommendations"`
}

// HighFactorNames lists the names of high-risk factors in factor order.
func (r RiskAssessmentResult) HighFactorNames() []string {
	var names []string
	for _, f := range r.Factors {
		if f.IsHigh() {
			names = append(names, f.Name)
		}
	}
	return names
}

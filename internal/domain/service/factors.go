package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

const (
	durationDescription   = "Risk based on contract duration"
	complianceDescription = "Risk based on compliance requirements"
)

// ComputeFactors scores a contract with the default rules.
func ComputeFactors(c model.Contract) []model.RiskFactor {
	return defaultEngine.rules.computeFactors(c)
}

// computeFactors emits factors in the fixed order Value, Duration (only when
// both dates are set), Vendor, Category, Compliance.
func (r Rules) computeFactors(c model.Contract) []model.RiskFactor {
	factors := make([]model.RiskFactor, 0, 5)

	factors = append(factors, model.RiskFactor{
		Name:        model.FactorContractValue,
		Weight:      r.Weights.Value,
		Value:       r.valueRisk(c),
		Description: fmt.Sprintf("Contract value of %s", c.Value),
	})

	if months, ok := c.DurationMonths(); ok {
		factors = append(factors, model.RiskFactor{
			Name:        model.FactorContractDuration,
			Weight:      r.Weights.Duration,
			Value:       r.durationRisk(months),
			Description: durationDescription,
		})
	}

	factors = append(factors, model.RiskFactor{
		Name:        model.FactorVendorRisk,
		Weight:      r.Weights.Vendor,
		Value:       r.vendorRisk(c.Vendor),
		Description: "Vendor: " + c.Vendor,
	})

	category := c.Category
	if !c.HasCategory() {
		category = r.DefaultCategory
	}
	factors = append(factors, model.RiskFactor{
		Name:        model.FactorCategoryRisk,
		Weight:      r.Weights.Category,
		Value:       r.categoryRisk(category),
		Description: "Category: " + category,
	})

	factors = append(factors, model.RiskFactor{
		Name:        model.FactorComplianceRisk,
		Weight:      r.Weights.Compliance,
		Value:       r.complianceRisk(c),
		Description: complianceDescription,
	})

	return factors
}

func (r Rules) valueRisk(c model.Contract) float64 {
	for _, band := range r.ValueBands {
		if c.Value.AtLeast(band.Min) {
			return band.Risk
		}
	}
	return r.ValueFloorRisk
}

func (r Rules) durationRisk(months float64) float64 {
	for _, band := range r.DurationBands {
		if months >= band.MinMonths {
			return band.Risk
		}
	}
	return r.DurationFloorRisk
}

func (r Rules) vendorRisk(vendor string) float64 {
	v := strings.ToLower(vendor)
	for _, trusted := range r.TrustedVendors {
		if trusted != "" && strings.Contains(v, strings.ToLower(trusted)) {
			return r.TrustedVendorRisk
		}
	}
	return r.UntrustedVendorRisk
}

// categoryRisk looks up the table; an unset category has already been
// replaced by DefaultCategory, so only named-but-unknown categories miss.
func (r Rules) categoryRisk(category string) float64 {
	if v, ok := r.CategoryRisk[category]; ok {
		return v
	}
	return r.UnknownCategoryRisk
}

func (r Rules) complianceRisk(c model.Contract) float64 {
	risk := r.ComplianceBase
	if c.Status.Equal(valueobject.ContractStatusDraft) {
		risk += r.DraftPenalty
	}
	if !c.HasSchedule() {
		risk += r.MissingDatesPenalty
	}
	if !c.HasCategory() {
		risk += r.MissingCategoryPenalty
	}
	return math.Min(risk, r.ComplianceCap)
}

package service

import (
	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// ComputeDashboardStats derives the portfolio KPIs. HighRiskContracts counts
// only contracts whose stored level is exactly high; critical contracts are
// not included.
func ComputeDashboardStats(contracts []model.Contract, checks []model.ComplianceCheck) model.DashboardStats {
	stats := model.DashboardStats{TotalContracts: len(contracts)}

	for _, c := range contracts {
		switch {
		case c.Status.Equal(valueobject.ContractStatusActive):
			stats.ActiveContracts++
		case c.Status.Equal(valueobject.ContractStatusUnderReview):
			stats.PendingReviews++
		}
		if c.RiskLevel.Equal(valueobject.RiskLevelHigh) {
			stats.HighRiskContracts++
		}
	}

	compliant, total := countCompliant(checks)
	stats.ComplianceScore = 100
	if total > 0 {
		stats.ComplianceScore, _ = ratio(compliant, total, 1).Float64()
	}

	return stats
}

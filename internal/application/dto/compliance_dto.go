package dto

import "github.com/contractwatch/riskengine/internal/domain/model"

// ComplianceSummaryResponse lists per-category compliance rates, optionally
// scoped to one contract.
type ComplianceSummaryResponse struct {
	ContractID string                            `json:"contract_id,omitempty" yaml:"contract_id,omitempty"`
	Categories []model.ComplianceCategorySummary `json:"categories" yaml:"categories"`
}

// DashboardStatsResponse mirrors model.DashboardStats on the wire.
type DashboardStatsResponse = model.DashboardStats

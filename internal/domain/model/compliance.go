package model

import (
	"time"

	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

// DefaultComplianceCategory is used for checks whose rule carries no category.
const DefaultComplianceCategory = "General"

// ComplianceCheck is the outcome of one compliance rule evaluated against a contract.
type ComplianceCheck struct {
	ID           string
	ContractID   string
	RuleID       string
	Status       valueobject.ComplianceStatus
	RuleCategory string
	Details      string
	CheckedAt    time.Time
}

// Category returns the grouping key for the check.
func (c ComplianceCheck) Category() string {
	if c.RuleCategory == "" {
		return DefaultComplianceCategory
	}
	return c.RuleCategory
}

// ComplianceCategorySummary is the compliance rate for one rule category.
type ComplianceCategorySummary struct {
	Name       string `json:"name" yaml:"name"`
	Compliant  int    `json:"compliant" yaml:"compliant"`
	Total      int    `json:"total" yaml:"total"`
	Percentage int    `json:"percentage" yaml:"percentage"`
}

// DashboardStats are the portfolio KPIs shown on the dashboard.
type DashboardStats struct {
	TotalContracts    int     `json:"totalContracts"`
	ActiveContracts   int     `json:"activeContracts"`
	HighRiskContracts int     `json:"highRiskContracts"`
	PendingReviews    int     `json:"pendingReviews"`
	ComplianceScore   float64 `json:"complianceScore"`
}

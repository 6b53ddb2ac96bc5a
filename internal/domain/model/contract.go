package model

import (
	"time"

	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/money"
)

// Contract is a read-only snapshot of a procurement contract as seen by the
// risk engine. Category is empty when unset.
type Contract struct {
	ID             string
	ContractNumber string
	Title          string
	Vendor         string
	Category       string
	Value          money.Money
	Status         valueobject.ContractStatus
	StartDate      *time.Time
	EndDate        *time.Time

	// RiskScore and RiskLevel hold the last stored assessment; zero when never assessed.
	RiskScore *float64
	RiskLevel valueobject.RiskLevel

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCategory reports whether a category was set.
func (c Contract) HasCategory() bool {
	return c.Category != ""
}

// HasSchedule reports whether both start and end dates are present.
func (c Contract) HasSchedule() bool {
	return c.StartDate != nil && c.EndDate != nil
}

// DurationMonths returns the contract length in 30-day months, fractional.
// The second result is false when either date is missing.
func (c Contract) DurationMonths() (float64, bool) {
	if !c.HasSchedule() {
		return 0, false
	}
	return c.EndDate.Sub(*c.StartDate).Hours() / 24 / 30, true
}

// Package testutil holds fixtures and container helpers shared by the risk
// engine test suites.
package testutil

import (
	"time"
)

// Fixed identifiers for deterministic testing.
const (
	TestContractID1 = "00000000-0000-4000-8000-000000000001"
	TestContractID2 = "00000000-0000-4000-8000-000000000002"
	TestContractID3 = "00000000-0000-4000-8000-000000000003"
	TestRuleID1     = "00000000-0000-4000-8000-000000000101"
	TestRuleID2     = "00000000-0000-4000-8000-000000000102"
	TestUserID      = "00000000-0000-4000-8000-000000000201"
)

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date for optional fields.
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}

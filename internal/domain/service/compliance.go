package service

import (
	"github.com/shopspring/decimal"

	"github.com/contractwatch/riskengine/internal/domain/model"
)

// CategoryCount is the running compliant/total tally for one category.
type CategoryCount struct {
	Name      string
	Compliant int
	Total     int
}

// CategoryTally holds per-category counts in first-seen order.
type CategoryTally []CategoryCount

// GroupByCategory tallies checks per rule category. Checks without a
// category are counted under "General" and never dropped.
func GroupByCategory(checks []model.ComplianceCheck) CategoryTally {
	var tally CategoryTally
	index := make(map[string]int)

	for _, check := range checks {
		name := check.Category()
		i, ok := index[name]
		if !ok {
			i = len(tally)
			index[name] = i
			tally = append(tally, CategoryCount{Name: name})
		}
		tally[i] = tally[i].add(check)
	}

	return tally
}

func (c CategoryCount) add(check model.ComplianceCheck) CategoryCount {
	c.Total++
	if check.Status.IsCompliant() {
		c.Compliant++
	}
	return c
}

// ToSummaries converts a tally into summaries, preserving category order.
func ToSummaries(tally CategoryTally) []model.ComplianceCategorySummary {
	summaries := make([]model.ComplianceCategorySummary, 0, len(tally))
	for _, c := range tally {
		summaries = append(summaries, model.ComplianceCategorySummary{
			Name:       c.Name,
			Compliant:  c.Compliant,
			Total:      c.Total,
			Percentage: compliancePercentage(c.Compliant, c.Total),
		})
	}
	return summaries
}

// SummarizeCompliance groups checks by category and computes their compliance rates.
func SummarizeCompliance(checks []model.ComplianceCheck) []model.ComplianceCategorySummary {
	return ToSummaries(GroupByCategory(checks))
}

// countCompliant is the counting primitive shared with the dashboard.
func countCompliant(checks []model.ComplianceCheck) (compliant, total int) {
	var all CategoryCount
	for _, check := range checks {
		all = all.add(check)
	}
	return all.Compliant, all.Total
}

// compliancePercentage is round(compliant/total*100) with 100 for an empty set.
func compliancePercentage(compliant, total int) int {
	if total == 0 {
		return 100
	}
	return int(ratio(compliant, total, 0).IntPart())
}

func ratio(compliant, total int, places int32) decimal.Decimal {
	return decimal.NewFromInt(int64(compliant)*100).DivRound(decimal.NewFromInt(int64(total)), places)
}

package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Weights are the per-factor weights applied in the score fold.
type Weights struct {
	Value      float64
	Duration   float64
	Vendor     float64
	Category   float64
	Compliance float64
}

// ValueBand maps contract amounts at or above Min to Risk.
type ValueBand struct {
	Min  decimal.Decimal
	Risk float64
}

// DurationBand maps contract lengths at or above MinMonths to Risk.
type DurationBand struct {
	MinMonths float64
	Risk      float64
}

// Rules holds every lookup table and threshold the factor calculator uses.
// Bands are evaluated from the highest threshold down; the first match wins.
type Rules struct {
	Weights Weights

	ValueBands     []ValueBand
	ValueFloorRisk float64

	DurationBands     []DurationBand
	DurationFloorRisk float64

	TrustedVendors      []string
	TrustedVendorRisk   float64
	UntrustedVendorRisk float64

	CategoryRisk        map[string]float64
	UnknownCategoryRisk float64
	DefaultCategory     string

	ComplianceBase         float64
	DraftPenalty           float64
	MissingDatesPenalty    float64
	MissingCategoryPenalty float64
	ComplianceCap          float64
}

// DefaultRules returns the standard procurement rule set.
func DefaultRules() Rules {
	return Rules{
		Weights: Weights{
			Value:      0.25,
			Duration:   0.15,
			Vendor:     0.20,
			Category:   0.15,
			Compliance: 0.25,
		},
		ValueBands: []ValueBand{
			{Min: decimal.NewFromInt(1_000_000), Risk: 8},
			{Min: decimal.NewFromInt(500_000), Risk: 6},
			{Min: decimal.NewFromInt(100_000), Risk: 4},
			{Min: decimal.NewFromInt(50_000), Risk: 3},
		},
		ValueFloorRisk: 2,
		DurationBands: []DurationBand{
			{MinMonths: 36, Risk: 7},
			{MinMonths: 24, Risk: 5},
			{MinMonths: 12, Risk: 3},
		},
		DurationFloorRisk:   2,
		TrustedVendors:      []string{"Microsoft", "IBM", "Oracle", "SAP"},
		TrustedVendorRisk:   2,
		UntrustedVendorRisk: 5,
		CategoryRisk: map[string]float64{
			"IT Infrastructure": 6,
			"Software License":  4,
			"Construction":      8,
			"Consulting":        5,
			"Office Supplies":   2,
			"Maintenance":       4,
			"Security":          7,
			"General":           3,
		},
		UnknownCategoryRisk:    5,
		DefaultCategory:        "General",
		ComplianceBase:         3,
		DraftPenalty:           2,
		MissingDatesPenalty:    1,
		MissingCategoryPenalty: 1,
		ComplianceCap:          8,
	}
}

// Clone returns a deep copy so callers cannot mutate tables held by an engine.
func (r Rules) Clone() Rules {
	c := r
	c.ValueBands = slices.Clone(r.ValueBands)
	c.DurationBands = slices.Clone(r.DurationBands)
	c.TrustedVendors = slices.Clone(r.TrustedVendors)
	c.CategoryRisk = maps.Clone(r.CategoryRisk)
	return c
}

// Validate checks weights are in (0,1] and every risk value is on the 0-10 scale.
func (r Rules) Validate() error {
	var errs []error

	for name, w := range map[string]float64{
		"value": r.Weights.Value, "duration": r.Weights.Duration, "vendor": r.Weights.Vendor,
		"category": r.Weights.Category, "compliance": r.Weights.Compliance,
	} {
		if w <= 0 || w > 1 {
			errs = append(errs, fmt.Errorf("weight %s must be in (0,1], got %v", name, w))
		}
	}

	checkRisk := func(label string, v float64) {
		if v < 0 || v > 10 {
			errs = append(errs, fmt.Errorf("%s must be in [0,10], got %v", label, v))
		}
	}
	for _, b := range r.ValueBands {
		checkRisk("value band risk", b.Risk)
	}
	for _, b := range r.DurationBands {
		checkRisk("duration band risk", b.Risk)
	}
	for cat, v := range r.CategoryRisk {
		checkRisk("category risk "+cat, v)
	}
	checkRisk("value floor risk", r.ValueFloorRisk)
	checkRisk("duration floor risk", r.DurationFloorRisk)
	checkRisk("trusted vendor risk", r.TrustedVendorRisk)
	checkRisk("untrusted vendor risk", r.UntrustedVendorRisk)
	checkRisk("unknown category risk", r.UnknownCategoryRisk)
	checkRisk("compliance cap", r.ComplianceCap)
	checkRisk("compliance base", r.ComplianceBase)
	checkRisk("draft penalty", r.DraftPenalty)
	checkRisk("missing dates penalty", r.MissingDatesPenalty)
	checkRisk("missing category penalty", r.MissingCategoryPenalty)

	if r.DefaultCategory == "" {
		errs = append(errs, errors.New("default category is required"))
	} else if _, ok := r.CategoryRisk[r.DefaultCategory]; !ok {
		errs = append(errs, fmt.Errorf("default category %q has no category risk", r.DefaultCategory))
	}

	return errors.Join(errs...)
}

// normalized returns a clone with bands sorted by descending threshold.
func (r Rules) normalized() Rules {
	n := r.Clone()
	slices.SortStableFunc(n.ValueBands, func(a, b ValueBand) int {
		return b.Min.Cmp(a.Min)
	})
	slices.SortStableFunc(n.DurationBands, func(a, b DurationBand) int {
		switch {
		case a.MinMonths > b.MinMonths:
			return -1
		case a.MinMonths < b.MinMonths:
			return 1
		default:
			return 0
		}
	})
	return n
}

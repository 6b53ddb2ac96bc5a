package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/contractwatch/riskengine/internal/domain/service"
)

// RulesFile is the on-disk YAML layout of the risk rule tables. Absent keys
// keep their default values; a band list or vendor list, when present,
// replaces the default list entirely while category entries are merged.
type RulesFile struct {
	Weights             *WeightsFile       `yaml:"weights,omitempty"`
	ValueBands          []ValueBandFile    `yaml:"value_bands,omitempty"`
	ValueFloorRisk      *float64           `yaml:"value_floor_risk,omitempty"`
	DurationBands       []DurationBandFile `yaml:"duration_bands,omitempty"`
	DurationFloorRisk   *float64           `yaml:"duration_floor_risk,omitempty"`
	TrustedVendors      []string           `yaml:"trusted_vendors,omitempty"`
	TrustedVendorRisk   *float64           `yaml:"trusted_vendor_risk,omitempty"`
	UntrustedVendorRisk *float64           `yaml:"untrusted_vendor_risk,omitempty"`
	CategoryRisk        map[string]float64 `yaml:"category_risk,omitempty"`
	UnknownCategoryRisk *float64           `yaml:"unknown_category_risk,omitempty"`
	DefaultCategory     string             `yaml:"default_category,omitempty"`
	Compliance          *ComplianceFile    `yaml:"compliance,omitempty"`
}

type WeightsFile struct {
	Value      *float64 `yaml:"value,omitempty"`
	Duration   *float64 `yaml:"duration,omitempty"`
	Vendor     *float64 `yaml:"vendor,omitempty"`
	Category   *float64 `yaml:"category,omitempty"`
	Compliance *float64 `yaml:"compliance,omitempty"`
}

type ValueBandFile struct {
	Min  Threshold `yaml:"min"`
	Risk float64   `yaml:"risk"`
}

// Threshold is a decimal amount written as a plain YAML number.
type Threshold struct {
	decimal.Decimal
}

func (t *Threshold) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", node.Value, err)
	}
	t.Decimal = d
	return nil
}

func (t Threshold) MarshalYAML() (any, error) {
	tag := "!!float"
	if t.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
}

type DurationBandFile struct {
	MinMonths float64 `yaml:"min_months"`
	Risk      float64 `yaml:"risk"`
}

type ComplianceFile struct {
	Base                   *float64 `yaml:"base,omitempty"`
	DraftPenalty           *float64 `yaml:"draft_penalty,omitempty"`
	MissingDatesPenalty    *float64 `yaml:"missing_dates_penalty,omitempty"`
	MissingCategoryPenalty *float64 `yaml:"missing_category_penalty,omitempty"`
	Cap                    *float64 `yaml:"cap,omitempty"`
}

// LoadRules reads a rules file and overlays it on service.DefaultRules.
// An empty path yields the defaults.
func LoadRules(path string) (service.Rules, error) {
	if path == "" {
		return service.DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return service.Rules{}, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return service.Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes YAML rules from r and overlays them on the defaults.
func ParseRules(r io.Reader) (service.Rules, error) {
	var file RulesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return service.Rules{}, fmt.Errorf("failed to decode rules: %w", err)
	}
	rules, err := file.apply(service.DefaultRules())
	if err != nil {
		return service.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return service.Rules{}, err
	}
	return rules, nil
}

func (f RulesFile) apply(rules service.Rules) (service.Rules, error) {
	if w := f.Weights; w != nil {
		setFloat(&rules.Weights.Value, w.Value)
		setFloat(&rules.Weights.Duration, w.Duration)
		setFloat(&rules.Weights.Vendor, w.Vendor)
		setFloat(&rules.Weights.Category, w.Category)
		setFloat(&rules.Weights.Compliance, w.Compliance)
	}

	if len(f.ValueBands) > 0 {
		rules.ValueBands = make([]service.ValueBand, 0, len(f.ValueBands))
		for _, b := range f.ValueBands {
			if b.Min.IsNegative() {
				return service.Rules{}, fmt.Errorf("value band minimum must not be negative, got %s", b.Min)
			}
			rules.ValueBands = append(rules.ValueBands, service.ValueBand{Min: b.Min.Decimal, Risk: b.Risk})
		}
	}
	setFloat(&rules.ValueFloorRisk, f.ValueFloorRisk)

	if len(f.DurationBands) > 0 {
		rules.DurationBands = make([]service.DurationBand, 0, len(f.DurationBands))
		for _, b := range f.DurationBands {
			rules.DurationBands = append(rules.DurationBands, service.DurationBand(b))
		}
	}
	setFloat(&rules.DurationFloorRisk, f.DurationFloorRisk)

	if len(f.TrustedVendors) > 0 {
		rules.TrustedVendors = f.TrustedVendors
	}
	setFloat(&rules.TrustedVendorRisk, f.TrustedVendorRisk)
	setFloat(&rules.UntrustedVendorRisk, f.UntrustedVendorRisk)

	for cat, risk := range f.CategoryRisk {
		rules.CategoryRisk[cat] = risk
	}
	setFloat(&rules.UnknownCategoryRisk, f.UnknownCategoryRisk)
	if f.DefaultCategory != "" {
		rules.DefaultCategory = f.DefaultCategory
	}

	if c := f.Compliance; c != nil {
		setFloat(&rules.ComplianceBase, c.Base)
		setFloat(&rules.DraftPenalty, c.DraftPenalty)
		setFloat(&rules.MissingDatesPenalty, c.MissingDatesPenalty)
		setFloat(&rules.MissingCategoryPenalty, c.MissingCategoryPenalty)
		setFloat(&rules.ComplianceCap, c.Cap)
	}

	return rules, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// MarshalRules renders rules in the file layout, every key populated.
func MarshalRules(rules service.Rules) ([]byte, error) {
	f := RulesFile{
		Weights: &WeightsFile{
			Value:      &rules.Weights.Value,
			Duration:   &rules.Weights.Duration,
			Vendor:     &rules.Weights.Vendor,
			Category:   &rules.Weights.Category,
			Compliance: &rules.Weights.Compliance,
		},
		ValueFloorRisk:      &rules.ValueFloorRisk,
		DurationFloorRisk:   &rules.DurationFloorRisk,
		TrustedVendors:      rules.TrustedVendors,
		TrustedVendorRisk:   &rules.TrustedVendorRisk,
		UntrustedVendorRisk: &rules.UntrustedVendorRisk,
		CategoryRisk:        rules.CategoryRisk,
		UnknownCategoryRisk: &rules.UnknownCategoryRisk,
		DefaultCategory:     rules.DefaultCategory,
		Compliance: &ComplianceFile{
			Base:                   &rules.ComplianceBase,
			DraftPenalty:           &rules.DraftPenalty,
			MissingDatesPenalty:    &rules.MissingDatesPenalty,
			MissingCategoryPenalty: &rules.MissingCategoryPenalty,
			Cap:                    &rules.ComplianceCap,
		},
	}
	for _, b := range rules.ValueBands {
		f.ValueBands = append(f.ValueBands, ValueBandFile{Min: Threshold{b.Min}, Risk: b.Risk})
	}
	for _, b := range rules.DurationBands {
		f.DurationBands = append(f.DurationBands, DurationBandFile(b))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package valueobject

import "fmt"

// Score thresholds for risk level classification, inclusive lower bounds.
const (
	CriticalThreshold = 7.0
	HighThreshold     = 5.0
	MediumThreshold   = 3.0
)

// RiskLevel is an immutable value object representing the risk classification.
// Levels are totally ordered: low < medium < high < critical.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "low"}
	RiskLevelMedium   = RiskLevel{value: "medium"}
	RiskLevelHigh     = RiskLevel{value: "high"}
	RiskLevelCritical = RiskLevel{value: "critical"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	case "critical":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

// RiskLevelFromScore derives the RiskLevel for a score on the 0-10 scale.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return RiskLevelCritical
	case score >= HighThreshold:
		return RiskLevelHigh
	case score >= MediumThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Rank returns the position of the level in the total order, starting at 1
// for low. The zero value ranks 0.
func (r RiskLevel) Rank() int {
	switch r.value {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	case "critical":
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether r is at or above other in the total order.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Rank() >= other.Rank()
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = RiskLevel{}
		return nil
	}
	parsed, err := RiskLevelFromString(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

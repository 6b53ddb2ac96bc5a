package valueobject

import "fmt"

// ComplianceStatus is the outcome of evaluating a compliance rule against a contract.
type ComplianceStatus struct {
	value string
}

var (
	ComplianceStatusCompliant      = ComplianceStatus{value: "compliant"}
	ComplianceStatusNonCompliant   = ComplianceStatus{value: "non_compliant"}
	ComplianceStatusPendingReview  = ComplianceStatus{value: "pending_review"}
	ComplianceStatusNeedsAttention = ComplianceStatus{value: "needs_attention"}
)

// ComplianceStatusFromString reconstructs a ComplianceStatus from its string representation.
func ComplianceStatusFromString(s string) (ComplianceStatus, error) {
	switch s {
	case "compliant":
		return ComplianceStatusCompliant, nil
	case "non_compliant":
		return ComplianceStatusNonCompliant, nil
	case "pending_review":
		return ComplianceStatusPendingReview, nil
	case "needs_attention":
		return ComplianceStatusNeedsAttention, nil
	default:
		return ComplianceStatus{}, fmt.Errorf("invalid compliance status: %q", s)
	}
}

func (s ComplianceStatus) String() string {
	return s.value
}

// IsCompliant is true only for the compliant status; every other status counts against the score.
func (s ComplianceStatus) IsCompliant() bool {
	return s == ComplianceStatusCompliant
}

func (s ComplianceStatus) IsZero() bool {
	return s.value == ""
}

func (s ComplianceStatus) Equal(other ComplianceStatus) bool {
	return s.value == other.value
}

func (s ComplianceStatus) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

func (s *ComplianceStatus) UnmarshalText(text []byte) error {
	parsed, err := ComplianceStatusFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

package valueobject

import "fmt"

// ContractStatus is the lifecycle state of a contract.
type ContractStatus struct {
	value string
}

var (
	ContractStatusDraft       = ContractStatus{value: "draft"}
	ContractStatusUnderReview = ContractStatus{value: "under_review"}
	ContractStatusActive      = ContractStatus{value: "active"}
	ContractStatusCompleted   = ContractStatus{value: "completed"}
	ContractStatusCancelled   = ContractStatus{value: "cancelled"}
	ContractStatusExpired     = ContractStatus{value: "expired"}
)

// ContractStatusFromString reconstructs a ContractStatus from its string representation.
func ContractStatusFromString(s string) (ContractStatus, error) {
	switch s {
	case "draft":
		return ContractStatusDraft, nil
	case "under_review":
		return ContractStatusUnderReview, nil
	case "active":
		return ContractStatusActive, nil
	case "completed":
		return ContractStatusCompleted, nil
	case "cancelled":
		return ContractStatusCancelled, nil
	case "expired":
		return ContractStatusExpired, nil
	default:
		return ContractStatus{}, fmt.Errorf("invalid contract status: %q", s)
	}
}

func (s ContractStatus) String() string {
	return s.value
}

// IsTerminal reports whether the contract has left its working lifecycle.
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusCompleted || s == ContractStatusCancelled || s == ContractStatusExpired
}

func (s ContractStatus) IsZero() bool {
	return s.value == ""
}

func (s ContractStatus) Equal(other ContractStatus) bool {
	return s.value == other.value
}

func (s ContractStatus) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

func (s *ContractStatus) UnmarshalText(text []byte) error {
	parsed, err := ContractStatusFromString(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

package dto

import (
	"fmt"

	"github.com/contractwatch/riskengine/internal/domain/model"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/money"
)

// ContractInput is an inline contract description used for ad-hoc evaluation.
type ContractInput struct {
	ID             string `json:"id" yaml:"id"`
	ContractNumber string `json:"contract_number" yaml:"contract_number"`
	Title          string `json:"title" yaml:"title"`
	Vendor         string `json:"vendor" yaml:"vendor"`
	Category       string `json:"category" yaml:"category"`
	Value          Amount `json:"value" yaml:"value"`
	Currency       string `json:"currency" yaml:"currency"`
	// Status defaults to draft.
	Status    string `json:"status" yaml:"status"`
	StartDate *Date  `json:"start_date,omitempty" yaml:"start_date"`
	EndDate   *Date  `json:"end_date,omitempty" yaml:"end_date"`
}

// ToModel converts the input into a contract snapshot.
func (in ContractInput) ToModel() (model.Contract, error) {
	currency := money.DefaultCurrency
	if in.Currency != "" {
		c, err := money.NewCurrency(in.Currency)
		if err != nil {
			return model.Contract{}, err
		}
		currency = c
	}

	status := valueobject.ContractStatusDraft
	if in.Status != "" {
		s, err := valueobject.ContractStatusFromString(in.Status)
		if err != nil {
			return model.Contract{}, err
		}
		status = s
	}

	if in.Value.IsNegative() {
		return model.Contract{}, fmt.Errorf("contract value must not be negative")
	}

	return model.Contract{
		ID:             in.ID,
		ContractNumber: in.ContractNumber,
		Title:          in.Title,
		Vendor:         in.Vendor,
		Category:       in.Category,
		Value:          money.New(in.Value.Decimal, currency),
		Status:         status,
		StartDate:      in.StartDate.ptr(),
		EndDate:        in.EndDate.ptr(),
	}, nil
}

// ComplianceCheckInput is an inline compliance check outcome.
type ComplianceCheckInput struct {
	Status   string `json:"status" yaml:"status"`
	Category string `json:"category" yaml:"category"`
}

// ToModel converts the input into a compliance check.
func (in ComplianceCheckInput) ToModel() (model.ComplianceCheck, error) {
	status, err := valueobject.ComplianceStatusFromString(in.Status)
	if err != nil {
		return model.ComplianceCheck{}, err
	}
	return model.ComplianceCheck{Status: status, RuleCategory: in.Category}, nil
}

// ChecksToModel converts a batch of inputs, failing on the first invalid status.
func ChecksToModel(inputs []ComplianceCheckInput) ([]model.ComplianceCheck, error) {
	checks := make([]model.ComplianceCheck, 0, len(inputs))
	for i, in := range inputs {
		c, err := in.ToModel()
		if err != nil {
			return nil, fmt.Errorf("check %d: %w", i, err)
		}
		checks = append(checks, c)
	}
	return checks, nil
}

// ContractSummary is a stored contract with its last assessment outcome.
type ContractSummary struct {
	ID             string   `json:"id"`
	ContractNumber string   `json:"contract_number"`
	Title          string   `json:"title"`
	Vendor         string   `json:"vendor"`
	Category       string   `json:"category,omitempty"`
	Value          string   `json:"value"`
	Currency       string   `json:"currency"`
	Status         string   `json:"status"`
	RiskScore      *float64 `json:"risk_score,omitempty"`
	RiskLevel      string   `json:"risk_level,omitempty"`
	StartDate      *Date    `json:"start_date,omitempty"`
	EndDate        *Date    `json:"end_date,omitempty"`
}

// FromContract maps a stored contract to its summary.
func FromContract(c model.Contract) ContractSummary {
	s := ContractSummary{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		Title:          c.Title,
		Vendor:         c.Vendor,
		Category:       c.Category,
		Value:          c.Value.Amount().StringFixed(2),
		Currency:       c.Value.Currency().Code(),
		Status:         c.Status.String(),
		RiskScore:      c.RiskScore,
	}
	if !c.RiskLevel.IsZero() {
		s.RiskLevel = c.RiskLevel.String()
	}
	if c.StartDate != nil {
		s.StartDate = &Date{*c.StartDate}
	}
	if c.EndDate != nil {
		s.EndDate = &Date{*c.EndDate}
	}
	return s
}

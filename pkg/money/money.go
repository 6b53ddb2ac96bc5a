// Package money holds the currency-tagged decimal amounts carried by
// contracts. Amounts are compared in raw units; no conversion is performed
// between currencies.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}

// Common contract currencies. EUR is the default tag for new contracts.
var (
	EUR = MustCurrency("EUR")
	USD = MustCurrency("USD")
	GBP = MustCurrency("GBP")

	DefaultCurrency = EUR
)

// Money is an immutable contract amount tagged with a currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromString parses an amount string and currency code into a Money value.
// An empty currency code falls back to DefaultCurrency.
func NewFromString(amount string, currency string) (Money, error) {
	cur := DefaultCurrency
	if currency != "" {
		parsed, err := NewCurrency(currency)
		if err != nil {
			return Money{}, fmt.Errorf("invalid currency: %w", err)
		}
		cur = parsed
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	return Money{amount: d, currency: cur}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency tag.
func (m Money) Currency() Currency {
	return m.currency
}

// IsNegative returns true if the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// AtLeast reports whether the raw amount is greater than or equal to threshold,
// ignoring the currency tag.
func (m Money) AtLeast(threshold decimal.Decimal) bool {
	return m.amount.GreaterThanOrEqual(threshold)
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the value as "<amount> <currency>" with two decimal places,
// for example "1200000.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency.Code())
}

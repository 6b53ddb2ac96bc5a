package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/contractwatch/riskengine/internal/application/dto"
	"github.com/contractwatch/riskengine/internal/domain/valueobject"
	"github.com/contractwatch/riskengine/pkg/testutil"
)

func TestContractInput_JSON(t *testing.T) {
	raw := `{
		"id": "c-1",
		"vendor": "Initech",
		"category": "Construction",
		"value": 1200000,
		"currency": "EUR",
		"status": "active",
		"start_date": "2024-01-01",
		"end_date": "2027-01-01T00:00:00Z"
	}`

	var in dto.ContractInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	c, err := in.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "1200000.00 EUR", c.Value.String())
	assert.Equal(t, valueobject.ContractStatusActive, c.Status)
	require.True(t, c.HasSchedule())
	assert.Equal(t, testutil.Date(2024, 1, 1), *c.StartDate)
	assert.Equal(t, testutil.Date(2027, 1, 1), *c.EndDate)
}

func TestContractInput_YAML(t *testing.T) {
	raw := `
vendor: Microsoft Ireland
value: "75000.50"
currency: USD
start_date: 2024-03-01
`
	var in dto.ContractInput
	require.NoError(t, yaml.Unmarshal([]byte(raw), &in))

	c, err := in.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "75000.50 USD", c.Value.String())
	assert.Equal(t, valueobject.ContractStatusDraft, c.Status)
	assert.NotNil(t, c.StartDate)
	assert.Nil(t, c.EndDate)
	assert.False(t, c.HasCategory())
}

func TestContractInput_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   dto.ContractInput
	}{
		{"bad currency", dto.ContractInput{Currency: "euro"}},
		{"bad status", dto.ContractInput{Status: "archived"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.ToModel()
			assert.Error(t, err)
		})
	}

}

func TestContractInput_NegativeValue(t *testing.T) {
	var in dto.ContractInput
	require.NoError(t, json.Unmarshal([]byte(`{"value": -5}`), &in))

	_, err := in.ToModel()
	testutil.AssertErrorContains(t, err, "must not be negative")
}

func TestParseDate(t *testing.T) {
	d, err := dto.ParseDate("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(2025, 6, 30), d.Time)

	_, err = dto.ParseDate("30/06/2025")
	assert.Error(t, err)
}

func TestChecksToModel(t *testing.T) {
	checks, err := dto.ChecksToModel([]dto.ComplianceCheckInput{
		{Status: "compliant", Category: "Security"},
		{Status: "pending_review"},
	})
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "General", checks[1].Category())

	_, err = dto.ChecksToModel([]dto.ComplianceCheckInput{{Status: "ok"}})
	testutil.AssertErrorContains(t, err, "check 0")
}

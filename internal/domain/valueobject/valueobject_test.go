package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractwatch/riskengine/internal/domain/valueobject"
)

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelLow},
		{2.9, valueobject.RiskLevelLow},
		{3.0, valueobject.RiskLevelMedium},
		{4.9, valueobject.RiskLevelMedium},
		{5.0, valueobject.RiskLevelHigh},
		{6.9, valueobject.RiskLevelHigh},
		{7.0, valueobject.RiskLevelCritical},
		{10, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, valueobject.RiskLevelFromScore(tt.score), "score %.1f", tt.score)
	}
}

func TestRiskLevelFromScore_Monotonic(t *testing.T) {
	prev := valueobject.RiskLevelFromScore(0)
	for i := 1; i <= 100; i++ {
		cur := valueobject.RiskLevelFromScore(float64(i) / 10)
		assert.True(t, cur.AtLeast(prev), "level dropped at %.1f", float64(i)/10)
		prev = cur
	}
}

func TestRiskLevelFromString(t *testing.T) {
	for _, lvl := range []valueobject.RiskLevel{
		valueobject.RiskLevelLow, valueobject.RiskLevelMedium,
		valueobject.RiskLevelHigh, valueobject.RiskLevelCritical,
	} {
		parsed, err := valueobject.RiskLevelFromString(lvl.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(lvl))
	}

	_, err := valueobject.RiskLevelFromString("HIGH")
	assert.Error(t, err)
}

func TestRiskLevel_Ordering(t *testing.T) {
	assert.True(t, valueobject.RiskLevelCritical.AtLeast(valueobject.RiskLevelHigh))
	assert.True(t, valueobject.RiskLevelHigh.AtLeast(valueobject.RiskLevelHigh))
	assert.False(t, valueobject.RiskLevelMedium.AtLeast(valueobject.RiskLevelHigh))
	assert.True(t, valueobject.RiskLevel{}.IsZero())
	assert.Equal(t, 0, valueobject.RiskLevel{}.Rank())
}

func TestRiskLevel_JSON(t *testing.T) {
	type wrapper struct {
		Level valueobject.RiskLevel `json:"level"`
	}

	data, err := json.Marshal(wrapper{Level: valueobject.RiskLevelHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"high"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"level":"critical"}`), &w))
	assert.Equal(t, valueobject.RiskLevelCritical, w.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"level":"severe"}`), &w))
}

func TestContractStatus(t *testing.T) {
	s, err := valueobject.ContractStatusFromString("under_review")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ContractStatusUnderReview, s)

	_, err = valueobject.ContractStatusFromString("archived")
	assert.Error(t, err)

	assert.False(t, valueobject.ContractStatusDraft.IsTerminal())
	assert.False(t, valueobject.ContractStatusActive.IsTerminal())
	assert.True(t, valueobject.ContractStatusCompleted.IsTerminal())
	assert.True(t, valueobject.ContractStatusCancelled.IsTerminal())
	assert.True(t, valueobject.ContractStatusExpired.IsTerminal())
}

func TestComplianceStatus(t *testing.T) {
	s, err := valueobject.ComplianceStatusFromString("needs_attention")
	require.NoError(t, err)
	assert.False(t, s.IsCompliant())
	assert.True(t, valueobject.ComplianceStatusCompliant.IsCompliant())
	assert.False(t, valueobject.ComplianceStatusPendingReview.IsCompliant())

	_, err = valueobject.ComplianceStatusFromString("ok")
	assert.Error(t, err)
}

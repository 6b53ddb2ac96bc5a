package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}

// AssertScore compares one-decimal risk scores with a tolerance that absorbs float formatting.
func AssertScore(t *testing.T, expected, actual float64) {
	t.Helper()
	assert.InDelta(t, expected, actual, 1e-9)
}

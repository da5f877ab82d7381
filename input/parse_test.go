package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$1,000,000", 1000000},
		{"1000000", 1000000},
		{"  $250,000.50 ", 250000.5},
		{"250k", 250000},
		{"1.5m", 1500000},
		{"1_000", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseCurrency_Invalid(t *testing.T) {
	_, err := ParseCurrency("  ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ParseCurrency("one million")
	assert.Error(t, err)
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"20.00%", 0.20},
		{"2%", 0.02},
		{" -1.5 % ", -0.015},
		{"0.2", 0.2},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePercent(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, err := ParsePercent("twenty%")
	assert.Error(t, err)
	_, err = ParsePercent("1")
	assert.NoError(t, err, "a bare 1 is 100%")
	_, err = ParsePercent("")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParsePercent_BareValueAboveOne(t *testing.T) {
	for _, in := range []string{"2", "20", "-1.5"} {
		_, err := ParsePercent(in)
		require.ErrorIs(t, err, ErrBarePercent, in)
		assert.Contains(t, err.Error(), `"`+in+`%"`)
	}

	got, err := ParsePercent("2%")
	require.NoError(t, err)
	assert.InDelta(t, 0.02, got, 1e-12)
}

func TestParseMultiplier(t *testing.T) {
	for in, want := range map[string]float64{"2.0x": 2, "2.5X": 2.5, "3": 3, " 1.25x ": 1.25} {
		got, err := ParseMultiplier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMultiplier("x")
	assert.Error(t, err)
}

func TestFieldError_Unwrap(t *testing.T) {
	err := &FieldError{Field: "home_value", Value: "", Err: ErrEmpty}
	assert.True(t, errors.Is(err, ErrEmpty))
	assert.Contains(t, err.Error(), "home_value")
}

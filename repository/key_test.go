package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hei-calculator/domain"
)

func TestProjectionKey(t *testing.T) {
	terms := domain.ContractTerms{
		HomeValue:         1_000_000,
		AppreciationRate:  0.02,
		PremiumPercentage: 0.20,
		HEIMultiplier:     2.0,
		InvestorCapRate:   0.20,
	}

	k1, err := ProjectionKey(terms, 10)
	require.NoError(t, err)
	k2, err := ProjectionKey(terms, 10)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, projectionKeyPrefix))
	assert.Len(t, k1, len(projectionKeyPrefix)+16)

	other, err := ProjectionKey(terms, 11)
	require.NoError(t, err)
	assert.NotEqual(t, k1, other, "horizon must be part of the key")

	terms.InvestorCapRate = 0.19
	changed, err := ProjectionKey(terms, 10)
	require.NoError(t, err)
	assert.NotEqual(t, k1, changed)
}

package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hei-calculator/config"
	"hei-calculator/domain"
)

func newSettlementService() *SettlementService {
	log := newTestLogger()
	return NewSettlementService(
		NewProjectionService(NewMockCache(), log),
		NewNarrativeService(config.NarrativeConfig{}, log),
	)
}

func TestSettlementQuote_CapBinding(t *testing.T) {
	svc := newSettlementService()

	quote, err := svc.Quote(context.Background(), domain.SettlementInput{Terms: defaultTerms(), ExitYear: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, quote.ExitYear)
	assertMoney(t, 1_020_000, quote.HomeValue, "home value")
	assertMoney(t, 240_000, quote.SettlementValue, "settlement")
	assertMoney(t, 780_000, quote.HomeownerEquity, "equity")
	assert.Equal(t, domain.BindingCap, quote.Controlling)
	assert.InDelta(t, 1.2, quote.PremiumMultiple, 1e-12)
	assert.InDelta(t, 0.20, quote.EffectiveAnnualCost, 1e-12, "a binding cap costs exactly the cap rate")
	assert.Contains(t, quote.Explanation, "year 1")
}

func TestSettlementQuote_ContractBinding(t *testing.T) {
	svc := newSettlementService()

	quote, err := svc.Quote(context.Background(), domain.SettlementInput{Terms: defaultTerms(), ExitYear: 10})
	require.NoError(t, err)

	assert.Equal(t, domain.BindingContract, quote.Controlling)
	expectedMultiple := quote.SettlementValue / 200_000
	assert.InDelta(t, expectedMultiple, quote.PremiumMultiple, 1e-12)
	assert.InDelta(t, math.Pow(expectedMultiple, 0.1)-1, quote.EffectiveAnnualCost, 1e-12)
	assert.Less(t, quote.EffectiveAnnualCost, 0.20)
}

func TestSettlementQuote_YearZero(t *testing.T) {
	svc := newSettlementService()

	quote, err := svc.Quote(context.Background(), domain.SettlementInput{Terms: defaultTerms(), ExitYear: 0})
	require.NoError(t, err)

	assertMoney(t, 200_000, quote.SettlementValue, "settlement")
	assert.Equal(t, 1.0, quote.PremiumMultiple)
	assert.Zero(t, quote.EffectiveAnnualCost)
}

func TestSettlementQuote_InvalidExitYear(t *testing.T) {
	svc := newSettlementService()

	for _, year := range []int{-1, MaxHorizonYears + 1} {
		_, err := svc.Quote(context.Background(), domain.SettlementInput{Terms: defaultTerms(), ExitYear: year})
		var invalidErr *domain.InvalidTermsError
		require.ErrorAs(t, err, &invalidErr, "exit year %d", year)
		assert.Equal(t, "horizon_years", invalidErr.Field)
	}
}

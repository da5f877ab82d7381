package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hei-calculator/domain"
)

func TestSweep_OrderedRates(t *testing.T) {
	svc := NewSensitivityService(newTestLogger())

	result, err := svc.Sweep(context.Background(), domain.SensitivityInput{
		Terms:        defaultTerms(),
		HorizonYears: 10,
		FromRate:     -0.02,
		ToRate:       0.06,
		Step:         0.01,
	})
	require.NoError(t, err)
	require.Len(t, result.Points, 9)

	expected := []float64{-0.02, -0.01, 0, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06}
	for i, p := range result.Points {
		assert.Equal(t, expected[i], p.AppreciationRate)
		if i > 0 {
			assert.Greater(t, p.FinalHomeValue, result.Points[i-1].FinalHomeValue)
		}
	}
}

func TestSweep_MatchesSingleProjection(t *testing.T) {
	svc := NewSensitivityService(newTestLogger())

	result, err := svc.Sweep(context.Background(), domain.SensitivityInput{
		Terms:        defaultTerms(),
		HorizonYears: 10,
		FromRate:     0.02,
		ToRate:       0.02,
		Step:         0.01,
	})
	require.NoError(t, err)
	require.Len(t, result.Points, 1)

	projection, err := NewProjection(defaultTerms(), 10)
	require.NoError(t, err)

	p := result.Points[0]
	assert.Equal(t, projection.Final().HomeValue, p.FinalHomeValue)
	assert.Equal(t, projection.Final().SettlementValue, p.FinalSettlement)
	assert.Equal(t, domain.BindingContract, p.Controlling)
	assert.Equal(t, 5, p.CrossoverYear)
}

func TestSweep_HighAppreciationKeepsCapBinding(t *testing.T) {
	svc := NewSensitivityService(newTestLogger())

	result, err := svc.Sweep(context.Background(), domain.SensitivityInput{
		Terms:        defaultTerms(),
		HorizonYears: 10,
		FromRate:     0.25,
		ToRate:       0.25,
		Step:         0.05,
	})
	require.NoError(t, err)

	p := result.Points[0]
	assert.Equal(t, domain.BindingCap, p.Controlling)
	assert.Equal(t, -1, p.CrossoverYear)
}

func TestSweep_InvalidInput(t *testing.T) {
	svc := NewSensitivityService(newTestLogger())

	tests := []struct {
		name  string
		input domain.SensitivityInput
		field string
	}{
		{"zero step", domain.SensitivityInput{Terms: defaultTerms(), FromRate: 0, ToRate: 0.1, Step: 0}, "step"},
		{"reversed range", domain.SensitivityInput{Terms: defaultTerms(), FromRate: 0.1, ToRate: 0, Step: 0.01}, "from_rate"},
		{"too many points", domain.SensitivityInput{Terms: defaultTerms(), FromRate: 0, ToRate: 1, Step: 0.001}, "step"},
		{"rate below -100%", domain.SensitivityInput{Terms: defaultTerms(), FromRate: -1.5, ToRate: 0, Step: 0.5}, "appreciation_rate"},
		{"bad terms", domain.SensitivityInput{Terms: domain.ContractTerms{HomeValue: 1}, FromRate: 0, ToRate: 0, Step: 0.01}, "premium_percentage"},
		{"horizon too long", domain.SensitivityInput{Terms: defaultTerms(), HorizonYears: MaxHorizonYears + 1, FromRate: 0, ToRate: 0, Step: 0.01}, "horizon_years"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Sweep(context.Background(), tc.input)
			var invalidErr *domain.InvalidTermsError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, tc.field, invalidErr.Field)
		})
	}
}

func TestSweep_CancelledContext(t *testing.T) {
	svc := NewSensitivityService(newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Sweep(ctx, domain.SensitivityInput{
		Terms: defaultTerms(), HorizonYears: 10, FromRate: 0, ToRate: 0.05, Step: 0.01,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

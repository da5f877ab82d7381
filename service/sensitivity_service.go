package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
)

// SensitivityService re-runs the projection of one contract across a range
// of appreciation rates.
type SensitivityService struct {
	log *logrus.Logger
}

func NewSensitivityService(log *logrus.Logger) *SensitivityService {
	return &SensitivityService{log: log}
}

// Sweep evaluates every rate from input.FromRate to input.ToRate in
// input.Step increments. Projections run concurrently; points are returned in
// ascending rate order.
func (s *SensitivityService) Sweep(
	ctx context.Context,
	input domain.SensitivityInput,
) (domain.SensitivityResult, error) {
	rates, err := sweepRates(input.FromRate, input.ToRate, input.Step)
	if err != nil {
		return domain.SensitivityResult{}, err
	}
	if input.HorizonYears > MaxHorizonYears {
		return domain.SensitivityResult{}, invalid("horizon_years", float64(input.HorizonYears),
			fmt.Sprintf("must not exceed %d years", MaxHorizonYears))
	}

	points := make([]domain.SensitivityPoint, len(rates))
	errs := make([]error, len(rates))

	var wg sync.WaitGroup
	for i, rate := range rates {
		wg.Add(1)
		go func(i int, rate float64) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			terms := input.Terms
			terms.AppreciationRate = rate
			projection, err := NewProjection(terms, input.HorizonYears)
			if err != nil {
				errs[i] = err
				return
			}

			final := projection.Final()
			points[i] = domain.SensitivityPoint{
				AppreciationRate: rate,
				FinalHomeValue:   final.HomeValue,
				FinalSettlement:  final.SettlementValue,
				Controlling:      final.Controlling(),
				CrossoverYear:    projection.CrossoverYear(),
			}
		}(i, rate)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return domain.SensitivityResult{}, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"points":        len(points),
		"horizon_years": input.HorizonYears,
	}).Debug("sensitivity sweep complete")

	return domain.SensitivityResult{
		HorizonYears: input.HorizonYears,
		Points:       points,
	}, nil
}

// sweepRates expands from..to into evenly spaced rates. Each rate is computed
// from its index rather than by repeated addition, then rounded so that
// 0.01 steps print as 0.03 instead of 0.030000000000000002.
func sweepRates(from, to, step float64) ([]float64, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{{"from_rate", from}, {"to_rate", to}, {"step", step}} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return nil, invalid(f.name, f.value, "must be a finite number")
		}
	}
	if step <= 0 {
		return nil, invalid("step", step, "must be positive")
	}
	if from > to {
		return nil, invalid("from_rate", from, "must not exceed to_rate")
	}

	span := (to - from) / step
	if span+1 > MaxSweepPoints {
		return nil, invalid("step", step, fmt.Sprintf("sweep exceeds %d points", MaxSweepPoints))
	}
	count := int(math.Floor(span+1e-9)) + 1

	rates := make([]float64, count)
	for i := range rates {
		rates[i] = math.Round((from+float64(i)*step)*sweepRateScale) / sweepRateScale
	}
	return rates, nil
}

package service

import (
	"fmt"
	"math"

	"hei-calculator/domain"
)

// ValidateTerms checks the contract terms against the ranges the projection
// engine accepts.
func ValidateTerms(terms domain.ContractTerms) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"home_value", terms.HomeValue},
		{"appreciation_rate", terms.AppreciationRate},
		{"premium_percentage", terms.PremiumPercentage},
		{"hei_multiplier", terms.HEIMultiplier},
		{"investor_cap_rate", terms.InvestorCapRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, f.value, "must be a finite number")
		}
	}

	if terms.HomeValue <= 0 {
		return invalid("home_value", terms.HomeValue, "must be positive")
	}
	if terms.PremiumPercentage <= 0 || terms.PremiumPercentage > 1 {
		return invalid("premium_percentage", terms.PremiumPercentage, "must be in (0, 1]")
	}
	if terms.HEIMultiplier <= 0 {
		return invalid("hei_multiplier", terms.HEIMultiplier, "must be positive")
	}
	if terms.AppreciationRate < MinGrowthRate {
		return invalid("appreciation_rate", terms.AppreciationRate, "must not be below -100%")
	}
	if terms.InvestorCapRate < MinGrowthRate {
		return invalid("investor_cap_rate", terms.InvestorCapRate, "must not be below -100%")
	}
	return nil
}

// Project runs the year-by-year projection for years 0..horizonYears.
//
// Growth is applied at each year transition before that year's contract and
// settlement values are computed; year 0 carries the current home value and
// the premium amount unchanged. The result depends only on its arguments.
func Project(terms domain.ContractTerms, horizonYears int) ([]domain.YearRecord, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}
	if horizonYears < 0 {
		return nil, invalid("horizon_years", float64(horizonYears), "must not be negative")
	}
	if horizonYears > MaxHorizonYears {
		return nil, invalid("horizon_years", float64(horizonYears),
			fmt.Sprintf("must not exceed %d years", MaxHorizonYears))
	}

	investorPercentage := terms.InvestorPercentage()
	currentHomeValue := terms.HomeValue
	currentCap := terms.PremiumAmount()

	records := make([]domain.YearRecord, 0, horizonYears+1)
	for year := 0; year <= horizonYears; year++ {
		if year > 0 {
			currentHomeValue *= 1 + terms.AppreciationRate
			currentCap *= 1 + terms.InvestorCapRate
		}

		contractValue := investorPercentage * currentHomeValue
		records = append(records, domain.YearRecord{
			Year:            year,
			HomeValue:       currentHomeValue,
			HEICap:          currentCap,
			ContractValue:   contractValue,
			SettlementValue: math.Min(currentCap, contractValue),
		})
	}

	return records, nil
}

// NewProjection wraps Project with the derived figures collaborators need.
func NewProjection(terms domain.ContractTerms, horizonYears int) (domain.Projection, error) {
	records, err := Project(terms, horizonYears)
	if err != nil {
		return domain.Projection{}, err
	}
	return domain.Projection{
		Terms:              terms,
		HorizonYears:       horizonYears,
		PremiumAmount:      terms.PremiumAmount(),
		InvestorPercentage: terms.InvestorPercentage(),
		Records:            records,
	}, nil
}

func invalid(field string, value float64, reason string) error {
	return &domain.InvalidTermsError{Field: field, Value: value, Reason: reason}
}

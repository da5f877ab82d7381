package input

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"hei-calculator/domain"
	"hei-calculator/service"
)

//go:embed default-terms.yaml
var defaultTermsYAML []byte

// RawTerms holds contract terms exactly as a user typed them, in a form that
// YAML files, HTML forms, query strings and CLI flags can all fill.
type RawTerms struct {
	HomeValue         string `yaml:"home_value" json:"home_value"`
	AppreciationRate  string `yaml:"appreciation_rate" json:"appreciation_rate"`
	PremiumPercentage string `yaml:"premium_percentage" json:"premium_percentage"`
	HEIMultiplier     string `yaml:"hei_multiplier" json:"hei_multiplier"`
	InvestorCapRate   string `yaml:"investor_cap_rate" json:"investor_cap_rate"`
	HorizonYears      string `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
}

// Parse converts every field and validates the resulting terms. Parse
// failures are *FieldError; range violations are *domain.InvalidTermsError.
func (r RawTerms) Parse() (domain.ContractTerms, error) {
	var terms domain.ContractTerms
	fields := []struct {
		name  string
		raw   string
		parse func(string) (float64, error)
		dst   *float64
	}{
		{"home_value", r.HomeValue, ParseCurrency, &terms.HomeValue},
		{"appreciation_rate", r.AppreciationRate, ParsePercent, &terms.AppreciationRate},
		{"premium_percentage", r.PremiumPercentage, ParsePercent, &terms.PremiumPercentage},
		{"hei_multiplier", r.HEIMultiplier, ParseMultiplier, &terms.HEIMultiplier},
		{"investor_cap_rate", r.InvestorCapRate, ParsePercent, &terms.InvestorCapRate},
	}

	for _, f := range fields {
		val, err := f.parse(f.raw)
		if err != nil {
			return domain.ContractTerms{}, &FieldError{Field: f.name, Value: f.raw, Err: err}
		}
		*f.dst = val
	}

	if err := service.ValidateTerms(terms); err != nil {
		return domain.ContractTerms{}, err
	}
	return terms, nil
}

// Horizon returns the parsed horizon, or fallback when none was given.
func (r RawTerms) Horizon(fallback int) (int, error) {
	in := strings.TrimSpace(r.HorizonYears)
	if in == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, &FieldError{Field: "horizon_years", Value: r.HorizonYears, Err: err}
	}
	return n, nil
}

// DefaultRawTerms returns the embedded default contract: a $1,000,000 home,
// 2% appreciation, 20% premium, 2.0x multiplier and a 20% cap rate.
func DefaultRawTerms() RawTerms {
	var raw RawTerms
	if err := yaml.Unmarshal(defaultTermsYAML, &raw); err != nil {
		panic(fmt.Sprintf("embedded default terms are invalid: %v", err))
	}
	return raw
}

// LoadTermsFile reads a YAML terms file. Missing fields keep the defaults.
func LoadTermsFile(path string) (RawTerms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawTerms{}, fmt.Errorf("failed to read terms %s: %w", path, err)
	}

	raw := DefaultRawTerms()
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawTerms{}, fmt.Errorf("failed to parse terms %s: %w", path, err)
	}
	return raw, nil
}

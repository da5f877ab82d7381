package domain

// DefaultHorizonYears is the number of year transitions projected when the
// caller does not ask for a specific horizon. Year 0 is always included, so
// the default projection has eleven records.
const DefaultHorizonYears = 10

// ContractTerms are the economic terms of a Home Equity Investment. Rates and
// percentages are fractions (0.02 means 2%).
type ContractTerms struct {
	HomeValue         float64 `json:"home_value" yaml:"home_value"`
	AppreciationRate  float64 `json:"appreciation_rate" yaml:"appreciation_rate"`
	PremiumPercentage float64 `json:"premium_percentage" yaml:"premium_percentage"`
	HEIMultiplier     float64 `json:"hei_multiplier" yaml:"hei_multiplier"`
	InvestorCapRate   float64 `json:"investor_cap_rate" yaml:"investor_cap_rate"`
}

// PremiumAmount is the upfront cash paid by the investor.
func (t ContractTerms) PremiumAmount() float64 {
	return t.HomeValue * t.PremiumPercentage
}

// InvestorPercentage is the uncapped share of future home value owed to the
// investor.
func (t ContractTerms) InvestorPercentage() float64 {
	return t.PremiumPercentage * t.HEIMultiplier
}

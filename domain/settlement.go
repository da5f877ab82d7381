package domain

type SettlementInput struct {
	Terms    ContractTerms `json:"terms"`
	ExitYear int           `json:"exit_year"`
}

// SettlementQuote is what the homeowner owes when the contract is settled at
// ExitYear.
type SettlementQuote struct {
	ExitYear        int     `json:"exit_year"`
	HomeValue       float64 `json:"home_value"`
	SettlementValue float64 `json:"settlement_value"`
	Controlling     Binding `json:"controlling"`
	HomeownerEquity float64 `json:"homeowner_equity"`
	PremiumMultiple float64 `json:"premium_multiple"`
	// EffectiveAnnualCost is the compound annual rate that grows the premium
	// into the settlement value. Zero at year 0.
	EffectiveAnnualCost float64 `json:"effective_annual_cost"`
	Explanation         string  `json:"explanation,omitempty"`
}

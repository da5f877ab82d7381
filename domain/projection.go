package domain

import "fmt"

// Binding identifies which of the two investor claims is the smaller one in a
// given year.
type Binding int

const (
	BindingCap      Binding = iota // HEI Cap is strictly smaller
	BindingContract                // contract value is strictly smaller
	BindingTie                     // both claims are equal; both are marked
)

func (b Binding) String() string {
	switch b {
	case BindingCap:
		return "cap"
	case BindingContract:
		return "contract"
	case BindingTie:
		return "tie"
	default:
		return "unknown"
	}
}

// MarshalText lets Binding travel as "cap", "contract" or "tie" in JSON and
// YAML documents.
func (b Binding) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (b *Binding) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cap":
		*b = BindingCap
	case "contract":
		*b = BindingContract
	case "tie":
		*b = BindingTie
	default:
		return fmt.Errorf("unknown binding %q", text)
	}
	return nil
}

// MarksCap reports whether the HEI Cap column is highlighted for this binding.
func (b Binding) MarksCap() bool {
	return b == BindingCap || b == BindingTie
}

// MarksContract reports whether the contract value column is highlighted.
func (b Binding) MarksContract() bool {
	return b == BindingContract || b == BindingTie
}

// YearRecord holds one row of a projection: the projected home value for
// Year and the two investor claims against it. SettlementValue is the lower
// of HEICap and ContractValue.
type YearRecord struct {
	Year            int     `json:"year"`
	HomeValue       float64 `json:"home_value"`
	HEICap          float64 `json:"hei_cap"`
	ContractValue   float64 `json:"contract_value"`
	SettlementValue float64 `json:"settlement_value"`
}

// Controlling compares the cap with the contract value. It is a read of the
// two fields only; SettlementValue is the minimum whatever the result.
func (r YearRecord) Controlling() Binding {
	switch {
	case r.HEICap < r.ContractValue:
		return BindingCap
	case r.ContractValue < r.HEICap:
		return BindingContract
	default:
		return BindingTie
	}
}

// Projection bundles the engine output with the terms and derived figures it
// was computed from. Records are ordered by year, starting at year 0.
type Projection struct {
	Terms              ContractTerms `json:"terms"`
	HorizonYears       int           `json:"horizon_years"`
	PremiumAmount      float64       `json:"premium_amount"`
	InvestorPercentage float64       `json:"investor_percentage"`
	Records            []YearRecord  `json:"records"`
}

// Final returns the record for the last projected year.
func (p Projection) Final() YearRecord {
	if len(p.Records) == 0 {
		return YearRecord{}
	}
	return p.Records[len(p.Records)-1]
}

// CrossoverYear returns the first year in which the contract value is the
// strictly smaller claim, or -1 when the cap (or a tie) controls throughout.
func (p Projection) CrossoverYear() int {
	for _, r := range p.Records {
		if r.Controlling() == BindingContract {
			return r.Year
		}
	}
	return -1
}

package domain

// SensitivityInput sweeps the appreciation rate of a single contract from
// FromRate to ToRate (inclusive) in Step increments. The AppreciationRate in
// Terms is ignored.
type SensitivityInput struct {
	Terms        ContractTerms `json:"terms"`
	HorizonYears int           `json:"horizon_years"`
	FromRate     float64       `json:"from_rate"`
	ToRate       float64       `json:"to_rate"`
	Step         float64       `json:"step"`
}

type SensitivityPoint struct {
	AppreciationRate float64 `json:"appreciation_rate"`
	FinalHomeValue   float64 `json:"final_home_value"`
	FinalSettlement  float64 `json:"final_settlement"`
	Controlling      Binding `json:"controlling"`
	CrossoverYear    int     `json:"crossover_year"`
}

type SensitivityResult struct {
	HorizonYears int                `json:"horizon_years"`
	Points       []SensitivityPoint `json:"points"`
}

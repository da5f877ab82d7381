package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"hei-calculator/domain"
)

var csvHeader = []string{"year", "home_value", "hei_cap", "contract_value", "settlement_value", "controlling"}

// WriteCSV writes one row per projected year with amounts rounded to cents.
func WriteCSV(w io.Writer, proj domain.Projection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range proj.Records {
		row := []string{
			strconv.Itoa(r.Year),
			cents(r.HomeValue),
			cents(r.HEICap),
			cents(r.ContractValue),
			cents(r.SettlementValue),
			r.Controlling().String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package report

import (
	"fmt"
	"io"
	"strings"

	"hei-calculator/domain"
)

// WriteTable prints the terms summary and the yearly table. A "*" follows
// whichever of HEI Cap and contract value sets the settlement; both carry
// one when they are equal.
func WriteTable(w io.Writer, proj domain.Projection) error {
	p := newPrinter()
	terms := proj.Terms

	var b strings.Builder
	fmt.Fprintf(&b, "Home value:           %s\n", money(p, terms.HomeValue))
	fmt.Fprintf(&b, "Appreciation rate:    %s\n", percent(p, terms.AppreciationRate))
	fmt.Fprintf(&b, "Premium:              %s (%s)\n", money(p, proj.PremiumAmount), percent(p, terms.PremiumPercentage))
	fmt.Fprintf(&b, "HEI multiplier:       %.2fx\n", terms.HEIMultiplier)
	fmt.Fprintf(&b, "Investor percentage:  %s\n", percent(p, proj.InvestorPercentage))
	fmt.Fprintf(&b, "Investor cap rate:    %s\n\n", percent(p, terms.InvestorCapRate))

	fmt.Fprintf(&b, "%4s  %18s  %18s  %18s  %18s\n", "Year", "Home Value", "HEI Cap", "Contract Value", "Settlement")
	for _, r := range proj.Records {
		capMark, contractMark := marks(r)
		fmt.Fprintf(&b, "%4d  %18s  %18s  %18s  %18s\n",
			r.Year,
			money(p, r.HomeValue),
			money(p, r.HEICap)+capMark,
			money(p, r.ContractValue)+contractMark,
			money(p, r.SettlementValue),
		)
	}
	b.WriteString("\n* controlling value (settlement is the smaller of HEI Cap and contract value)\n")

	_, err := io.WriteString(w, b.String())
	return err
}

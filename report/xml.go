package report

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"hei-calculator/domain"
)

// WriteXML writes the projection as an XML document:
//
//	<hei_projection horizon_years="10">
//	  <terms home_value="1000000.00" .../>
//	  <years><year number="0" controlling="cap">...</year></years>
//	</hei_projection>
func WriteXML(w io.Writer, proj domain.Projection) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("hei_projection")
	root.CreateAttr("horizon_years", strconv.Itoa(proj.HorizonYears))

	terms := root.CreateElement("terms")
	terms.CreateAttr("home_value", cents(proj.Terms.HomeValue))
	terms.CreateAttr("appreciation_rate", formatRate(proj.Terms.AppreciationRate))
	terms.CreateAttr("premium_percentage", formatRate(proj.Terms.PremiumPercentage))
	terms.CreateAttr("hei_multiplier", formatRate(proj.Terms.HEIMultiplier))
	terms.CreateAttr("investor_cap_rate", formatRate(proj.Terms.InvestorCapRate))

	derived := root.CreateElement("derived")
	derived.CreateElement("premium_amount").SetText(cents(proj.PremiumAmount))
	derived.CreateElement("investor_percentage").SetText(formatRate(proj.InvestorPercentage))
	if year := proj.CrossoverYear(); year >= 0 {
		derived.CreateElement("crossover_year").SetText(strconv.Itoa(year))
	}

	years := root.CreateElement("years")
	for _, r := range proj.Records {
		y := years.CreateElement("year")
		y.CreateAttr("number", strconv.Itoa(r.Year))
		y.CreateAttr("controlling", r.Controlling().String())
		y.CreateElement("home_value").SetText(cents(r.HomeValue))
		y.CreateElement("hei_cap").SetText(cents(r.HEICap))
		y.CreateElement("contract_value").SetText(cents(r.ContractValue))
		y.CreateElement("settlement_value").SetText(cents(r.SettlementValue))
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

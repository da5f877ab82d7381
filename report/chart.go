package report

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/message"

	"hei-calculator/domain"
)

const (
	chartLeft   = pageMargin + 24
	chartTop    = 40.0
	chartWidth  = contentWidth - 26
	chartHeight = 120.0
	chartYTicks = 5
)

type rgb struct{ r, g, b int }

type chartSeries struct {
	label string
	color rgb
	value func(domain.YearRecord) float64
}

var growthSeries = []chartSeries{
	{"Home Value", rgb{31, 119, 180}, func(r domain.YearRecord) float64 { return r.HomeValue }},
	{"HEI Cap", rgb{255, 127, 14}, func(r domain.YearRecord) float64 { return r.HEICap }},
	{"Contract Value", rgb{44, 160, 44}, func(r domain.YearRecord) float64 { return r.ContractValue }},
	{"Settlement", rgb{214, 39, 40}, func(r domain.YearRecord) float64 { return r.SettlementValue }},
}

// drawGrowthChart adds a page plotting the four series by year, with a
// dashed marker at the crossover year.
func drawGrowthChart(pdf *fpdf.Fpdf, p *message.Printer, proj domain.Projection) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 10, "Investment Growth Over Time", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(0, 51, 102)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())

	maxValue := chartMax(proj.Records)
	if maxValue <= 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(contentWidth, 5, "No finite values to plot.", "", "L", false)
		return
	}
	yMax := niceCeil(maxValue)
	if !finite(yMax) {
		yMax = maxValue
	}

	x := func(year int) float64 {
		if proj.HorizonYears == 0 {
			return chartLeft + chartWidth/2
		}
		return chartLeft + chartWidth*float64(year)/float64(proj.HorizonYears)
	}
	y := func(v float64) float64 {
		return chartTop + chartHeight - chartHeight*(v/yMax)
	}

	// grid and y labels
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetLineWidth(0.2)
	for i := 0; i <= chartYTicks; i++ {
		v := yMax / chartYTicks * float64(i)
		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(chartLeft, y(v), chartLeft+chartWidth, y(v))
		pdf.SetXY(pageMargin, y(v)-2)
		pdf.CellFormat(chartLeft-pageMargin-2, 4, axisLabel(p, v), "", 0, "R", false, 0, "")
	}

	step := 1
	if proj.HorizonYears > 20 {
		step = int(math.Ceil(float64(proj.HorizonYears) / 10))
	}
	for year := 0; year <= proj.HorizonYears; year += step {
		pdf.SetXY(x(year)-5, chartTop+chartHeight+1)
		pdf.CellFormat(10, 4, fmt.Sprintf("%d", year), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(chartLeft, chartTop+chartHeight+6)
	pdf.CellFormat(chartWidth, 4, "Year", "", 0, "C", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(chartLeft, chartTop, chartLeft, chartTop+chartHeight)
	pdf.Line(chartLeft, chartTop+chartHeight, chartLeft+chartWidth, chartTop+chartHeight)

	if year := proj.CrossoverYear(); year >= 0 {
		pdf.SetDrawColor(120, 120, 120)
		pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
		pdf.Line(x(year), chartTop, x(year), chartTop+chartHeight)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetXY(x(year)+1, chartTop)
		pdf.CellFormat(30, 4, fmt.Sprintf("crossover, year %d", year), "", 0, "L", false, 0, "")
	}

	pdf.SetLineWidth(0.6)
	for _, s := range growthSeries {
		pdf.SetDrawColor(s.color.r, s.color.g, s.color.b)
		pdf.SetFillColor(s.color.r, s.color.g, s.color.b)
		for i, r := range proj.Records {
			v := s.value(r)
			if !finite(v) {
				continue
			}
			if proj.HorizonYears <= 20 {
				pdf.Circle(x(r.Year), y(v), 0.7, "F")
			}
			if i == 0 {
				continue
			}
			prev := s.value(proj.Records[i-1])
			if finite(prev) {
				pdf.Line(x(proj.Records[i-1].Year), y(prev), x(r.Year), y(v))
			}
		}
	}

	// legend
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	legendY := chartTop + chartHeight + 16
	legendX := chartLeft
	for _, s := range growthSeries {
		pdf.SetDrawColor(s.color.r, s.color.g, s.color.b)
		pdf.Line(legendX, legendY+2, legendX+8, legendY+2)
		pdf.SetXY(legendX+10, legendY)
		pdf.CellFormat(30, 4, s.label, "", 0, "L", false, 0, "")
		legendX += 40
	}
	pdf.SetLineWidth(0.2)
}

// chartMax is the largest finite value across all series.
func chartMax(records []domain.YearRecord) float64 {
	maxValue := 0.0
	for _, r := range records {
		for _, s := range growthSeries {
			if v := s.value(r); finite(v) && v > maxValue {
				maxValue = v
			}
		}
	}
	return maxValue
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*magnitude {
			return m * magnitude
		}
	}
	return 10 * magnitude
}

func axisLabel(p *message.Printer, v float64) string {
	if v >= 1e12 {
		return fmt.Sprintf("$%.1e", v)
	}
	return p.Sprintf("$%.0f", v)
}

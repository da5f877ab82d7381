package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"hei-calculator/domain"
)

const (
	pageMargin   = 15.0
	contentWidth = 210.0 - 2*pageMargin
	rowHeight    = 7.0
)

// PDFOptions controls the report metadata. Zero values are filled in by
// RenderPDF.
type PDFOptions struct {
	Title       string
	ReportID    string
	GeneratedAt time.Time
	Narrative   string
}

// RenderPDF builds an A4 report with the terms, the derived figures and the
// yearly table, followed by a growth chart page. The controlling cell of each
// row is shaded light green.
func RenderPDF(proj domain.Projection, opts PDFOptions) ([]byte, error) {
	pdf, err := buildPDF(proj, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPDF(proj domain.Projection, opts PDFOptions) (*fpdf.Fpdf, error) {
	if opts.Title == "" {
		opts.Title = "Home Equity Investment Projection"
	}
	if opts.ReportID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate report id: %w", err)
		}
		opts.ReportID = id.String()
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	p := newPrinter()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(opts.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, opts.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("Generated %s  |  Report %s", opts.GeneratedAt.Format("2006-01-02 15:04"), opts.ReportID),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	terms := proj.Terms
	summary := [][2]string{
		{"Home value", money(p, terms.HomeValue)},
		{"Appreciation rate", percent(p, terms.AppreciationRate)},
		{"Premium percentage", percent(p, terms.PremiumPercentage)},
		{"Premium amount", money(p, proj.PremiumAmount)},
		{"HEI multiplier", fmt.Sprintf("%.2fx", terms.HEIMultiplier)},
		{"Investor percentage", percent(p, proj.InvestorPercentage)},
		{"Investor cap rate", percent(p, terms.InvestorCapRate)},
	}
	pdf.SetTextColor(0, 0, 0)
	for _, row := range summary {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(contentWidth-60, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{16, 41, 41, 41, 41}
	headers := []string{"Year", "Home Value", "HEI Cap", "Contract Value", "Settlement"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(198, 239, 206)
	for _, r := range proj.Records {
		b := r.Controlling()
		pdf.CellFormat(widths[0], rowHeight, fmt.Sprintf("%d", r.Year), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], rowHeight, money(p, r.HomeValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], rowHeight, money(p, r.HEICap), "1", 0, "R", b.MarksCap(), 0, "")
		pdf.CellFormat(widths[3], rowHeight, money(p, r.ContractValue), "1", 0, "R", b.MarksContract(), 0, "")
		pdf.CellFormat(widths[4], rowHeight, money(p, r.SettlementValue), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(contentWidth, 4,
		"Shaded cells mark the controlling value. The settlement is the smaller of the HEI Cap and the contract value.",
		"", "L", false)

	if opts.Narrative != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(contentWidth, 7, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(contentWidth, 5, opts.Narrative, "", "L", false)
	}

	drawGrowthChart(pdf, p, proj)

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build pdf: %w", pdf.Error())
	}
	return pdf, nil
}

// Package report renders projections for people: text tables, CSV, XML,
// PDF and e-mail delivery.
package report

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hei-calculator/domain"
)

// controlMark follows a value that decides the settlement.
const controlMark = "*"

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// money renders an amount as "$1,219,001.90".
func money(p *message.Printer, amount float64) string {
	if !finite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return p.Sprintf("$%.2f", amount)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func percent(p *message.Printer, fraction float64) string {
	return p.Sprintf("%.2f%%", fraction*100)
}

// cents rounds half away from zero to two places for machine-readable output.
// Values that overflowed render as "+Inf", "-Inf" or "NaN".
func cents(amount float64) string {
	if !finite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func marks(r domain.YearRecord) (capMark, contractMark string) {
	b := r.Controlling()
	if b.MarksCap() {
		capMark = controlMark
	}
	if b.MarksContract() {
		contractMark = controlMark
	}
	return capMark, contractMark
}

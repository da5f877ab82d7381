// Package input is the validation boundary between user-entered text and the
// projection engine. It turns strings such as "$1,000,000", "20.00%" and
// "2.0x" into domain.ContractTerms.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is wrapped by FieldError when a required value is blank.
	ErrEmpty = errors.New("value is empty")
	// ErrBarePercent reports a number without "%" that is too large to be
	// a fraction, such as "2" meant as 2%.
	ErrBarePercent = errors.New("bare percentage out of range")
)

// FieldError reports a value that could not be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseCurrency parses amounts like "$1,000,000", "1000000", "250k" or "1.5m".
func ParseCurrency(s string) (float64, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, ErrEmpty
	}
	in = strings.TrimPrefix(in, "$")
	in = strings.ReplaceAll(in, ",", "")
	in = strings.ReplaceAll(in, "_", "")

	multiplier := 1.0
	if strings.HasSuffix(in, "k") {
		multiplier = 1_000
		in = strings.TrimSuffix(in, "k")
	} else if strings.HasSuffix(in, "m") {
		multiplier = 1_000_000
		in = strings.TrimSuffix(in, "m")
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
	if err != nil {
		return 0, fmt.Errorf("not a currency amount: %w", err)
	}
	return val * multiplier, nil
}

// ParsePercent converts "20.00%" to 0.2. A value without a percent sign is
// taken as a fraction already, so "0.2" is also 0.2. Bare values beyond
// [-1, 1] are rejected rather than read as hundreds of percent.
func ParsePercent(s string) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, ErrEmpty
	}
	if strings.HasSuffix(in, "%") {
		num, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(in, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("not a percentage: %w", err)
		}
		return num / 100.0, nil
	}
	val, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0, fmt.Errorf("not a percentage: %w", err)
	}
	if math.Abs(val) > 1 {
		return 0, fmt.Errorf("%w: %s is read as a fraction, write \"%s%%\" for a percentage",
			ErrBarePercent, in, in)
	}
	return val, nil
}

// ParseMultiplier accepts "2.0x", "2.0X" or "2".
func ParseMultiplier(s string) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, ErrEmpty
	}
	in = strings.TrimSuffix(strings.TrimSuffix(in, "x"), "X")
	val, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
	if err != nil {
		return 0, fmt.Errorf("not a multiplier: %w", err)
	}
	return val, nil
}

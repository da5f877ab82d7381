package domain

import "fmt"

// InvalidTermsError reports a contract term (or the projection horizon) that
// falls outside the range the projection engine accepts.
type InvalidTermsError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidTermsError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

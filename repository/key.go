package repository

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"hei-calculator/domain"
)

const projectionKeyPrefix = "hei:projection:v1:"

// ProjectionKey derives the cache key for a projection. Identical terms and
// horizon always map to the same key.
func ProjectionKey(terms domain.ContractTerms, horizonYears int) (string, error) {
	payload, err := json.Marshal(struct {
		Terms        domain.ContractTerms `json:"terms"`
		HorizonYears int                  `json:"horizon_years"`
	}{terms, horizonYears})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	return fmt.Sprintf("%s%016x", projectionKeyPrefix, xxhash.Sum64(payload)), nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"hei-calculator/domain"
	"hei-calculator/repository"
)

// ProjectionService serves projections through a cache. The engine is pure,
// so a cached projection is identical to a recomputed one.
type ProjectionService struct {
	cache repository.CacheRepository
	log   *logrus.Logger
}

// NewProjectionService creates a new ProjectionService backed by the given cache.
func NewProjectionService(cache repository.CacheRepository, log *logrus.Logger) *ProjectionService {
	return &ProjectionService{cache: cache, log: log}
}

// Project validates the request, then returns the cached projection or
// computes and caches a fresh one.
func (s *ProjectionService) Project(
	ctx context.Context,
	terms domain.ContractTerms,
	horizonYears int,
) (domain.Projection, error) {
	if horizonYears > MaxHorizonYears {
		return domain.Projection{}, invalid("horizon_years", float64(horizonYears),
			fmt.Sprintf("must not exceed %d years", MaxHorizonYears))
	}
	if err := ValidateTerms(terms); err != nil {
		return domain.Projection{}, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"home_value":    terms.HomeValue,
		"horizon_years": horizonYears,
	})

	key, err := repository.ProjectionKey(terms, horizonYears)
	if err != nil {
		return domain.Projection{}, err
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		var projection domain.Projection
		if err := json.Unmarshal([]byte(cached), &projection); err == nil {
			entry.Debug("projection served from cache")
			return projection, nil
		}
		entry.Warn("discarding undecodable cache entry")
	}

	projection, err := NewProjection(terms, horizonYears)
	if err != nil {
		return domain.Projection{}, err
	}

	// Caching is best effort.
	payload, err := json.Marshal(projection)
	if err == nil {
		err = s.cache.Set(ctx, key, string(payload))
	}
	if err != nil {
		entry.WithError(err).Warn("failed to cache projection")
	}

	entry.WithField("crossover_year", projection.CrossoverYear()).Debug("projection computed")
	return projection, nil
}

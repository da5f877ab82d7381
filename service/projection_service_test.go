package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"hei-calculator/domain"
	"hei-calculator/repository"
)

type MockCache struct {
	Data       map[string]string
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetCalls++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string) error {
	m.SetCalls++
	if m.ForceError {
		return errors.New("set error")
	}
	m.Data[key] = value
	return nil
}

func newTestLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestProjectionService_ComputesAndCaches(t *testing.T) {
	cache := NewMockCache()
	svc := NewProjectionService(cache, newTestLogger())

	projection, err := svc.Project(context.Background(), defaultTerms(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(projection.Records) != 11 {
		t.Fatalf("expected 11 records, got %d", len(projection.Records))
	}
	if projection.PremiumAmount != 200_000 {
		t.Errorf("expected premium 200000, got %.2f", projection.PremiumAmount)
	}
	if cache.SetCalls != 1 {
		t.Errorf("expected the projection to be cached once, got %d", cache.SetCalls)
	}
}

func TestProjectionService_CacheHitIsIdentical(t *testing.T) {
	cache := NewMockCache()
	svc := NewProjectionService(cache, newTestLogger())
	ctx := context.Background()

	first, err := svc.Project(ctx, defaultTerms(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Project(ctx, defaultTerms(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.SetCalls != 1 {
		t.Errorf("expected second call to be served from cache, got %d sets", cache.SetCalls)
	}
	for i := range first.Records {
		if first.Records[i] != second.Records[i] {
			t.Errorf("year %d differs between computed and cached projection", i)
		}
	}
}

func TestProjectionService_CorruptCacheEntryIsRecomputed(t *testing.T) {
	cache := NewMockCache()
	key, err := repository.ProjectionKey(defaultTerms(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Data[key] = "{not json"

	svc := NewProjectionService(cache, newTestLogger())
	projection, err := svc.Project(context.Background(), defaultTerms(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projection.Records) != 11 {
		t.Fatalf("expected 11 records, got %d", len(projection.Records))
	}

	var stored domain.Projection
	if err := json.Unmarshal([]byte(cache.Data[key]), &stored); err != nil {
		t.Errorf("expected the corrupt entry to be replaced: %v", err)
	}
}

func TestProjectionService_CacheFailureIsNotFatal(t *testing.T) {
	cache := NewMockCache()
	cache.ForceError = true
	svc := NewProjectionService(cache, newTestLogger())

	if _, err := svc.Project(context.Background(), defaultTerms(), 10); err != nil {
		t.Fatalf("cache errors must not fail the projection: %v", err)
	}
}

func TestProjectionService_InvalidTerms(t *testing.T) {
	cache := NewMockCache()
	svc := NewProjectionService(cache, newTestLogger())

	terms := defaultTerms()
	terms.PremiumPercentage = 0

	_, err := svc.Project(context.Background(), terms, 10)
	var invalidErr *domain.InvalidTermsError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidTermsError, got %v", err)
	}
	if cache.GetCalls != 0 || cache.SetCalls != 0 {
		t.Errorf("cache should NOT be touched for invalid terms")
	}
}

func TestProjectionService_HorizonLimit(t *testing.T) {
	svc := NewProjectionService(NewMockCache(), newTestLogger())

	_, err := svc.Project(context.Background(), defaultTerms(), MaxHorizonYears+1)
	var invalidErr *domain.InvalidTermsError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidTermsError, got %v", err)
	}
	if invalidErr.Field != "horizon_years" {
		t.Errorf("expected horizon_years, got %s", invalidErr.Field)
	}

	if _, err := svc.Project(context.Background(), defaultTerms(), MaxHorizonYears); err != nil {
		t.Errorf("horizon of %d should be accepted: %v", MaxHorizonYears, err)
	}
}

func TestProjectionService_WithMemoryCache(t *testing.T) {
	cache := repository.NewMemoryCache(0)
	svc := NewProjectionService(cache, newTestLogger())

	if _, err := svc.Project(context.Background(), defaultTerms(), 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cached projection, got %d", cache.Len())
	}
}

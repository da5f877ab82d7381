package service

import (
	"context"
	"math"

	"hei-calculator/domain"
)

type SettlementService struct {
	projectionService *ProjectionService
	narrativeService  *NarrativeService
}

func NewSettlementService(projectionService *ProjectionService, narrativeService *NarrativeService) *SettlementService {
	return &SettlementService{
		projectionService: projectionService,
		narrativeService:  narrativeService,
	}
}

// Quote returns what the homeowner owes when settling at input.ExitYear.
func (s *SettlementService) Quote(
	ctx context.Context,
	input domain.SettlementInput,
) (domain.SettlementQuote, error) {
	projection, err := s.projectionService.Project(ctx, input.Terms, input.ExitYear)
	if err != nil {
		return domain.SettlementQuote{}, err
	}

	quote := quoteFromRecord(projection.Final(), projection.PremiumAmount)
	if s.narrativeService != nil {
		quote.Explanation = s.narrativeService.ExplainSettlement(ctx, quote, input.Terms)
	}
	return quote, nil
}

func quoteFromRecord(record domain.YearRecord, premium float64) domain.SettlementQuote {
	quote := domain.SettlementQuote{
		ExitYear:        record.Year,
		HomeValue:       record.HomeValue,
		SettlementValue: record.SettlementValue,
		Controlling:     record.Controlling(),
		HomeownerEquity: record.HomeValue - record.SettlementValue,
		PremiumMultiple: record.SettlementValue / premium,
	}
	if record.Year > 0 {
		quote.EffectiveAnnualCost = math.Pow(quote.PremiumMultiple, 1/float64(record.Year)) - 1
	}
	return quote
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"hei-calculator/config"
	"hei-calculator/domain"
)

// NarrativeService turns projections into a short plain-language summary.
// With an API key it asks an OpenAI-compatible endpoint; otherwise, or when
// the call fails, it returns a fixed template.
type NarrativeService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	log        *logrus.Logger
}

type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

const narrativeSystemPrompt = "You explain Home Equity Investment (HEI) projections to homeowners. " +
	"Be precise with numbers, neutral in tone, and keep to three or four sentences."

func NewNarrativeService(cfg config.NarrativeConfig, log *logrus.Logger) *NarrativeService {
	return &NarrativeService{
		apiKey:  cfg.APIKey,
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		enabled: cfg.APIKey != "" && cfg.APIURL != "",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// ExplainProjection describes which claim controls the settlement and when
// that changes.
func (s *NarrativeService) ExplainProjection(ctx context.Context, p domain.Projection) string {
	if !s.enabled {
		return projectionFallback(p)
	}

	final := p.Final()
	prompt := fmt.Sprintf(`Summarise this HEI projection for the homeowner.

TERMS:
- Home value today: $%.2f
- Expected appreciation: %.2f%% per year
- Premium: %.2f%% of home value ($%.2f)
- Investor share (premium x multiplier): %.2f%%
- Investor cap growth: %.2f%% per year

AFTER %d YEARS:
- Home value: $%.2f
- HEI cap: $%.2f
- Contract value: $%.2f
- Settlement (lesser of the two): $%.2f
- First year the contract value is lower than the cap: %s

Explain which limit decides the payout and how that changes over time.`,
		p.Terms.HomeValue, p.Terms.AppreciationRate*100,
		p.Terms.PremiumPercentage*100, p.PremiumAmount,
		p.InvestorPercentage*100, p.Terms.InvestorCapRate*100,
		p.HorizonYears, final.HomeValue, final.HEICap, final.ContractValue, final.SettlementValue,
		crossoverText(p.CrossoverYear()))

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Warn("narrative endpoint failed, using fallback")
		return projectionFallback(p)
	}
	return explanation
}

// ExplainSettlement describes a settlement quote.
func (s *NarrativeService) ExplainSettlement(ctx context.Context, q domain.SettlementQuote, terms domain.ContractTerms) string {
	if !s.enabled {
		return settlementFallback(q)
	}

	prompt := fmt.Sprintf(`Explain this early settlement of an HEI contract to the homeowner.

- Exit year: %d
- Home value at exit: $%.2f
- Amount owed to the investor: $%.2f (%s)
- Homeowner equity after settlement: $%.2f
- Premium received at signing: $%.2f
- Effective annual cost of the premium: %.2f%%

Explain the cost of settling in that year in plain terms.`,
		q.ExitYear, q.HomeValue, q.SettlementValue, bindingText(q.Controlling),
		q.HomeownerEquity, terms.PremiumAmount(), q.EffectiveAnnualCost*100)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Warn("narrative endpoint failed, using fallback")
		return settlementFallback(q)
	}
	return explanation
}

func (s *NarrativeService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: narrativeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func projectionFallback(p domain.Projection) string {
	final := p.Final()
	crossover := p.CrossoverYear()

	var trend string
	switch {
	case crossover == 0:
		trend = "The contract value is below the cap from the start, so the investor's share of the home decides the payout."
	case crossover > 0:
		trend = fmt.Sprintf("The cap decides the payout until year %d, when the contract value falls below it.", crossover)
	default:
		trend = fmt.Sprintf("The cap stays at or below the contract value for all %d years, so the cap decides the payout throughout.", p.HorizonYears)
	}

	return fmt.Sprintf("The investor pays $%.2f today for a %.2f%% share of the home's future value. "+
		"After %d years the home is projected at $%.2f and the settlement at $%.2f (%s). %s",
		p.PremiumAmount, p.InvestorPercentage*100,
		p.HorizonYears, final.HomeValue, final.SettlementValue, bindingText(final.Controlling()),
		trend)
}

func settlementFallback(q domain.SettlementQuote) string {
	return fmt.Sprintf("Settling in year %d costs $%.2f (%s), leaving $%.2f of equity. "+
		"That is %.2fx the premium, an effective annual cost of %.2f%%.",
		q.ExitYear, q.SettlementValue, bindingText(q.Controlling), q.HomeownerEquity,
		q.PremiumMultiple, q.EffectiveAnnualCost*100)
}

func bindingText(b domain.Binding) string {
	switch b {
	case domain.BindingCap:
		return "set by the HEI cap"
	case domain.BindingContract:
		return "set by the contract value"
	default:
		return "cap and contract value are equal"
	}
}

func crossoverText(year int) string {
	if year < 0 {
		return "never within the horizon"
	}
	return fmt.Sprintf("year %d", year)
}

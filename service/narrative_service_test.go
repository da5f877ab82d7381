package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hei-calculator/config"
)

func TestExplainProjection_Fallback(t *testing.T) {
	svc := NewNarrativeService(config.NarrativeConfig{}, newTestLogger())
	projection, err := NewProjection(defaultTerms(), 10)
	require.NoError(t, err)

	text := svc.ExplainProjection(context.Background(), projection)

	assert.Contains(t, text, "$200000.00")
	assert.Contains(t, text, "40.00%")
	assert.Contains(t, text, "until year 5")
	assert.Contains(t, text, "set by the contract value")
}

func TestExplainProjection_CapThroughout(t *testing.T) {
	svc := NewNarrativeService(config.NarrativeConfig{}, newTestLogger())
	projection, err := NewProjection(defaultTerms(), 3)
	require.NoError(t, err)

	text := svc.ExplainProjection(context.Background(), projection)
	assert.Contains(t, text, "cap decides the payout throughout")
}

func TestExplainProjection_UsesEndpoint(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"model says hi"}}]}`))
	}))
	defer server.Close()

	svc := NewNarrativeService(config.NarrativeConfig{
		APIKey:  "test-key",
		APIURL:  server.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, newTestLogger())
	projection, err := NewProjection(defaultTerms(), 10)
	require.NoError(t, err)

	text := svc.ExplainProjection(context.Background(), projection)

	assert.Equal(t, "model says hi", text)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "AFTER 10 YEARS")
}

func TestExplainProjection_EndpointErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNarrativeService(config.NarrativeConfig{
		APIKey:  "test-key",
		APIURL:  server.URL,
		Timeout: 5 * time.Second,
	}, newTestLogger())
	projection, err := NewProjection(defaultTerms(), 10)
	require.NoError(t, err)

	text := svc.ExplainProjection(context.Background(), projection)
	assert.Contains(t, text, "The investor pays")
}

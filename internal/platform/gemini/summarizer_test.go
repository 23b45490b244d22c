package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSummarizer(t *testing.T, h http.HandlerFunc) *Summarizer {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	s, err := NewSummarizer(context.Background(), Config{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return s
}

func TestNewSummarizer_DefaultModel(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, DefaultModel, s.model)
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/"+DefaultModel+":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Cats are weird. Physics agrees."}]}}]}`))
	})

	got, err := s.Summarize(context.Background(), "summarize this")

	require.NoError(t, err)
	assert.Equal(t, "Cats are weird. Physics agrees.", got)
}

func TestSummarizer_Summarize_APIError(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := s.Summarize(context.Background(), "summarize this")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API request failed")
}

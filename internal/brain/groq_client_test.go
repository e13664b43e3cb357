package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroqBrain(t *testing.T, handler http.HandlerFunc) *GroqBrain {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b, err := NewGroqBrain("gsk_test", "llama-3.1-8b-instant", 6000, 0.2)
	require.NoError(t, err)
	b.BaseURL = srv.URL
	return b
}

func TestGroqBeautify(t *testing.T) {
	b := newTestGroqBrain(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.Equal(t, 6000, req.MaxTokens)
		assert.InDelta(t, 0.2, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, SystemPrompt, req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, "raw post body")

		fmt.Fprint(w, `{"choices":[{"message":{"content":"  Improved text.\n\nTL;DR: better.  "}}]}`)
	})

	out, err := b.Beautify(context.Background(), "raw post body")
	require.NoError(t, err)
	assert.Equal(t, "Improved text.\n\nTL;DR: better.", out, "output is trimmed")
}

func TestGroqBeautifyEmptyResponse(t *testing.T) {
	b := newTestGroqBrain(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"   "}}]}`)
	})

	_, err := b.Beautify(context.Background(), "raw")
	assert.ErrorContains(t, err, "empty response")
}

func TestGroqBeautifyNoChoices(t *testing.T) {
	b := newTestGroqBrain(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	})

	_, err := b.Beautify(context.Background(), "raw")
	assert.ErrorContains(t, err, "empty response")
}

func TestGroqBeautifyServiceError(t *testing.T) {
	b := newTestGroqBrain(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit exceeded"}}`)
	})

	_, err := b.Beautify(context.Background(), "raw")
	require.Error(t, err)
	assert.ErrorContains(t, err, "429")
}

func TestNewGroqBrainRequiresKey(t *testing.T) {
	_, err := NewGroqBrain("", "model", 6000, 0.2)
	assert.Error(t, err)
}

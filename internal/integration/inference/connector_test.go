package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "anthropic/claude-3.5-haiku",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func newTestConnector(t *testing.T, apiKey string, h http.HandlerFunc) *Connector {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewConnector(config.InferenceConnectorConfig{
		APIKey:    apiKey,
		BaseURL:   srv.URL,
		Model:     "anthropic/claude-3.5-haiku",
		MaxTokens: 500,
		Timeout:   5 * time.Second,
	}, zap.NewNop(), option.WithMaxRetries(0))
}

func TestConnector_InferStyle(t *testing.T) {
	var gotReq map[string]any
	c := newTestConnector(t, "or-key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody(
			"```json\n{\"genres\":[\"Folk/Acoustic\",\"Indie\"],\"mood\":\"nostalgic\",\"suggestedInstruments\":[\"Banjo\"],\"tempoHint\":\"slow\",\"styleKeywords\":[\"raw\",\"earthy\"]}\n```",
		))
	})

	style, err := c.InferStyle(context.Background(), entity.StyleModeSongs, "Mumford & Sons", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Folk/Acoustic", "Indie"}, style.Genres)
	assert.Equal(t, "nostalgic", style.Mood)
	assert.Equal(t, []string{"Banjo"}, style.SuggestedInstruments)
	assert.Equal(t, songwriter.TempoSlow, style.TempoHint)
	assert.Equal(t, []string{"raw", "earthy"}, style.StyleKeywords)

	assert.Equal(t, "anthropic/claude-3.5-haiku", gotReq["model"])
	assert.EqualValues(t, 500, gotReq["max_tokens"])
}

func TestConnector_InferStyle_NoAPIKey(t *testing.T) {
	called := false
	c := newTestConnector(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.InferStyle(context.Background(), entity.StyleModeVibe, "cozy", "")
	assert.ErrorIs(t, err, entity.ErrProviderUnavailable)
	assert.False(t, called)
}

func TestConnector_InferStyle_UpstreamError(t *testing.T) {
	c := newTestConnector(t, "or-key", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	})

	_, err := c.InferStyle(context.Background(), entity.StyleModeVibe, "cozy", "wedding")
	assert.ErrorIs(t, err, entity.ErrProviderUnavailable)
}

func TestParseStyle_Defaults(t *testing.T) {
	style, err := ParseStyle(`{"genres":"Pop","mood":7,"tempoHint":"presto"}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pop"}, style.Genres)
	assert.Equal(t, "uplifting", style.Mood)
	assert.Equal(t, []string{"Piano", "Acoustic Guitar"}, style.SuggestedInstruments)
	assert.Equal(t, songwriter.TempoMedium, style.TempoHint)
	assert.Equal(t, []string{"warm", "personal"}, style.StyleKeywords)
}

func TestParseStyle_Caps(t *testing.T) {
	style, err := ParseStyle(`{
		"genres":["a","b","c","d"],
		"suggestedInstruments":["1","2","3","4","5"],
		"styleKeywords":["k1","k2","k3","k4","k5","k6"],
		"tempoHint":"upbeat"
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, style.Genres)
	assert.Len(t, style.SuggestedInstruments, 4)
	assert.Len(t, style.StyleKeywords, 5)
	assert.Equal(t, songwriter.TempoUpbeat, style.TempoHint)
}

func TestParseStyle_Invalid(t *testing.T) {
	_, err := ParseStyle("not json at all")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"{}":                  "{}",
		"```json\n{}\n```":    "{}",
		"```\n{\"a\":1}\n```": "{\"a\":1}",
		"  ```json{}```  ":    "{}",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripFences(in), "input %q", in)
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Contains(t, buildPrompt(entity.StyleModeSongs, "Adele", "wedding"), `References: "Adele"`)

	vibe := buildPrompt(entity.StyleModeVibe, "campfire", "retirement")
	assert.Contains(t, vibe, `Vibe description: "campfire"`)
	assert.Contains(t, vibe, "Occasion: retirement")
	assert.NotContains(t, buildPrompt(entity.StyleModeVibe, "campfire", ""), "Occasion:")
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	style, err := m.InferStyle(context.Background(), entity.StyleModeVibe, "x", "Birthday")
	require.NoError(t, err)
	assert.Equal(t, songwriter.DefaultStyle("Birthday"), *style)
}

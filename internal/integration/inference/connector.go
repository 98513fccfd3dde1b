package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

const (
	maxGenres      = 3
	maxInstruments = 4
	maxKeywords    = 5
)

const songsPrompt = `You are a music expert. Given these song/artist references, infer the musical style.

References: %q

Analyze these references and return a JSON object with:
- genres: array of 1-3 most relevant genres (from: Pop, Rock, Country, R&B/Soul, Folk/Acoustic, Jazz, Classical, Electronic, Hip-Hop, Indie)
- mood: single word or short phrase describing the overall mood (e.g., "uplifting", "romantic", "energetic", "nostalgic")
- suggestedInstruments: array of 2-4 instruments that fit this style
- tempoHint: one of "slow", "medium", or "upbeat" based on the typical tempo of these artists/songs
- styleKeywords: array of 3-5 keywords that describe the sound (e.g., "acoustic", "layered harmonies", "electronic beats")

Return ONLY valid JSON, no markdown or explanation.`

const vibePrompt = `You are a music expert. Given this vibe description, suggest an appropriate musical style.

Vibe description: %q
%s
Based on this description, return a JSON object with:
- genres: array of 1-3 most fitting genres (from: Pop, Rock, Country, R&B/Soul, Folk/Acoustic, Jazz, Classical, Electronic, Hip-Hop, Indie)
- mood: single word or short phrase capturing the described mood
- suggestedInstruments: array of 2-4 instruments that would create this vibe
- tempoHint: one of "slow", "medium", or "upbeat" based on the described energy
- styleKeywords: array of 3-5 keywords that describe the desired sound

Return ONLY valid JSON, no markdown or explanation.`

// Connector infers a music style through an OpenAI compatible chat completions endpoint
type Connector struct {
	config config.InferenceConnectorConfig
	client openai.Client
	logger *zap.Logger
}

func NewConnector(cfg config.InferenceConnectorConfig, logger *zap.Logger, opts ...option.RequestOption) *Connector {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
	}

	return &Connector{
		config: cfg,
		client: openai.NewClient(append(base, opts...)...),
		logger: logger,
	}
}

// InferStyle asks the model for a style bundle. Errors mean the caller should fall back to a default.
func (c *Connector) InferStyle(ctx context.Context, mode entity.StyleMode, input, occasion string) (*songwriter.InferredStyle, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return nil, fmt.Errorf("%w: inference api key is not configured", entity.ErrProviderUnavailable)
	}

	ctxzap.Info(ctx, "inferring music style",
		zap.String("mode", string(mode)),
		zap.String("model", c.config.Model),
		zap.Int("input_length", len(input)),
	)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     c.config.Model,
		MaxTokens: openai.Int(c.config.MaxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(mode, input, occasion)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion: %v", entity.ErrProviderUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no completion choices", entity.ErrProviderUnavailable)
	}

	style, err := ParseStyle(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "music style inferred",
		zap.Strings("genres", style.Genres),
		zap.String("mood", style.Mood),
		zap.String("tempo_hint", string(style.TempoHint)),
	)

	return style, nil
}

func buildPrompt(mode entity.StyleMode, input, occasion string) string {
	if mode == entity.StyleModeSongs {
		return fmt.Sprintf(songsPrompt, input)
	}

	var occasionLine string
	if occasion != "" {
		occasionLine = "Occasion: " + occasion + "\n"
	}
	return fmt.Sprintf(vibePrompt, input, occasionLine)
}

// modelStyle is the shape the prompt asks the model to answer with
type modelStyle struct {
	Genres               any `json:"genres"`
	Mood                 any `json:"mood"`
	SuggestedInstruments any `json:"suggestedInstruments"`
	TempoHint            any `json:"tempoHint"`
	StyleKeywords        any `json:"styleKeywords"`
}

// ParseStyle decodes a model answer, tolerating markdown fences, and fills gaps with defaults
func ParseStyle(text string) (*songwriter.InferredStyle, error) {
	raw := stripFences(text)

	var parsed modelStyle
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode inferred style: %v", entity.ErrInvalidFormat, err)
	}

	style := &songwriter.InferredStyle{
		Genres:               stringList(parsed.Genres, maxGenres, []string{"Pop"}),
		Mood:                 "uplifting",
		SuggestedInstruments: stringList(parsed.SuggestedInstruments, maxInstruments, []string{"Piano", "Acoustic Guitar"}),
		TempoHint:            songwriter.TempoMedium,
		StyleKeywords:        stringList(parsed.StyleKeywords, maxKeywords, []string{"warm", "personal"}),
	}

	if mood, ok := parsed.Mood.(string); ok {
		style.Mood = mood
	}
	if hint, ok := parsed.TempoHint.(string); ok && songwriter.Tempo(hint).Valid() {
		style.TempoHint = songwriter.Tempo(hint)
	}

	return style, nil
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// stringList keeps the string members of an array value, up to limit. A non-array yields def.
func stringList(v any, limit int, def []string) []string {
	items, ok := v.([]any)
	if !ok {
		return def
	}

	out := make([]string, 0, limit)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

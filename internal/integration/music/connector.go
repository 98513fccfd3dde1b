package music

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/integration/common"
	"github.com/futig/songsmith/internal/songwriter"
	pkghttp "github.com/futig/songsmith/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	minPromptLen = 10
	promptPad    = ", professional quality music"
	lyricsPad    = "\n[Outro]\nThank you"
)

// fal queue status values
const (
	falInQueue    = "IN_QUEUE"
	falInProgress = "IN_PROGRESS"
	falCompleted  = "COMPLETED"
	falFailed     = "FAILED"
)

type audioSetting struct {
	SampleRate int    `json:"sample_rate"`
	Bitrate    int    `json:"bitrate"`
	Format     string `json:"format"`
}

type submitRequest struct {
	Prompt       string       `json:"prompt"`
	LyricsPrompt string       `json:"lyrics_prompt"`
	AudioSetting audioSetting `json:"audio_setting"`
}

type queueResponse struct {
	RequestID   string `json:"request_id"`
	Status      string `json:"status"`
	ResponseURL string `json:"response_url,omitempty"`
}

type statusResponse struct {
	Status      string `json:"status"`
	ResponseURL string `json:"response_url,omitempty"`
	Error       string `json:"error,omitempty"`
}

type resultResponse struct {
	Audio struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
		FileName    string `json:"file_name"`
		FileSize    int64  `json:"file_size"`
	} `json:"audio"`
}

// Connector talks to the fal.ai queue API hosting MiniMax Music
type Connector struct {
	config    config.MusicConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.MusicConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(
			cfg.HTTPClientConfig,
			logger,
			pkghttp.WithAuthScheme(pkghttp.SchemeKey, cfg.Token),
		),
		config: cfg,
		logger: logger,
	}
}

// SubmitSong queues a generation and returns the provider request id
func (c *Connector) SubmitSong(ctx context.Context, req entity.MusicJobRequest) (string, error) {
	body := submitRequest{
		Prompt:       FitPrompt(req.StylePrompt),
		LyricsPrompt: FitLyrics(req.Lyrics),
		AudioSetting: audioSetting{
			SampleRate: c.config.SampleRate,
			Bitrate:    c.config.Bitrate,
			Format:     c.config.Format,
		},
	}

	ctxzap.Info(ctx, "submitting song to music provider",
		zap.Int("prompt_length", len([]rune(body.Prompt))),
		zap.Int("lyrics_length", len([]rune(body.LyricsPrompt))),
	)

	var resp queueResponse
	err := c.config.Retry.Do(ctx,
		func() error {
			err := c.connector.DoRequest(ctx, http.MethodPost, c.config.SubmitEndpoint, body, &resp)
			if err != nil && !pkghttp.IsRetryable(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "music submission failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return "", mapProviderError(err)
	}

	if resp.RequestID == "" {
		return "", fmt.Errorf("%w: empty request id", entity.ErrProviderUnavailable)
	}

	ctxzap.Info(ctx, "song submitted", zap.String("job_id", resp.RequestID))
	return resp.RequestID, nil
}

// GetJob reads the current provider status of a job and resolves the audio url once it is done
func (c *Connector) GetJob(ctx context.Context, jobID string) (*entity.Job, error) {
	endpoint := fmt.Sprintf("%s/%s/status", c.config.StatusEndpoint, url.PathEscape(jobID))

	var status statusResponse
	if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &status); err != nil {
		if pkghttp.StatusCode(err) == http.StatusNotFound {
			return nil, entity.ErrJobNotFound
		}
		return nil, mapProviderError(err)
	}

	job := &entity.Job{
		ID:     jobID,
		Status: mapStatus(status.Status),
		Error:  status.Error,
	}

	if job.Status == entity.JobStatusCompleted && status.ResponseURL != "" {
		var result resultResponse
		err := c.connector.DoRequest(ctx, http.MethodGet, "", nil, &result, pkghttp.WithURL(status.ResponseURL))
		if err != nil {
			// the status stays completed; the next poll retries the fetch
			ctxzap.Warn(ctx, "failed to fetch music result", zap.String("job_id", jobID), zap.Error(err))
		} else {
			job.AudioURL = result.Audio.URL
		}
	}

	ctxzap.Debug(ctx, "music job polled",
		zap.String("job_id", jobID),
		zap.String("provider_status", status.Status),
		zap.String("status", string(job.Status)),
	)

	return job, nil
}

func mapStatus(s string) entity.JobStatus {
	switch s {
	case falInQueue:
		return entity.JobStatusQueued
	case falInProgress:
		return entity.JobStatusProcessing
	case falCompleted:
		return entity.JobStatusCompleted
	case falFailed:
		return entity.JobStatusFailed
	default:
		return entity.JobStatusProcessing
	}
}

func mapProviderError(err error) error {
	switch pkghttp.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: invalid music provider API key", entity.ErrProviderRejected)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: insufficient music provider credits", entity.ErrProviderRejected)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limit exceeded, try again shortly", entity.ErrProviderRejected)
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) || pkghttp.StatusCode(err) >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %v", entity.ErrProviderUnavailable, err)
	}

	return fmt.Errorf("music generation failed: %w", err)
}

// FitPrompt applies the provider's 10..300 character window to a style prompt
func FitPrompt(prompt string) string {
	prompt = songwriter.Truncate(prompt, songwriter.MaxStylePromptLen)
	if len([]rune(prompt)) < minPromptLen {
		prompt += promptPad
	}
	return prompt
}

// FitLyrics applies the provider's 10..3000 character window to lyrics
func FitLyrics(lyrics string) string {
	lyrics = songwriter.Truncate(lyrics, songwriter.MaxLyricsLen)
	if len([]rune(lyrics)) < minPromptLen {
		lyrics += lyricsPad
	}
	return lyrics
}

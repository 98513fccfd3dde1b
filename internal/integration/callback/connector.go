package callback

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/integration/common"
	pkghttp "github.com/futig/songsmith/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector posts song lifecycle events to caller supplied URLs
type Connector struct {
	config    config.CallbackConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
	now       func() time.Time
}

func NewConnector(
	cfg config.CallbackConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// SendSongReady notifies that a version has audio
func (c *Connector) SendSongReady(ctx context.Context, callbackURL string, requestID string, data *entity.CallbackSongReadyData) {
	err := c.Send(ctx, callbackURL, requestID, &entity.CallbackEvent{
		Event: entity.CallbackEventTypeSongReady,
		Data:  data,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to send song ready callback", zap.Error(err))
	}
}

// SendError notifies that a generation failed
func (c *Connector) SendError(ctx context.Context, callbackURL string, requestID string, message string, details map[string]any) {
	err := c.Send(ctx, callbackURL, requestID, &entity.CallbackEvent{
		Event: entity.CallbackEventTypeError,
		Data: &entity.CallbackErrorData{
			Error: entity.CallbackErrorDetails{
				Message: message,
				Details: details,
			},
		},
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to send error callback", zap.Error(err))
	}
}

func (c *Connector) Send(ctx context.Context, callbackURL string, requestID string, event *entity.CallbackEvent) error {
	if event.Timestamp == "" {
		event.Timestamp = c.now().UTC().Format(time.RFC3339)
	}

	ctxzap.Debug(ctx, "sending callback event",
		zap.String("event_type", string(event.Event)),
		zap.String("callback_url", callbackURL),
		zap.String("request_id", requestID),
		zap.String("timestamp", event.Timestamp),
	)

	opts := []pkghttp.RequestOpt{
		pkghttp.WithHeader("X-Request-ID", requestID),
		pkghttp.WithURL(callbackURL),
	}

	err := c.config.Retry.Do(ctx, func() error {
		err := c.connector.DoRequest(ctx, http.MethodPost, "", event, nil, opts...)
		if err != nil && !pkghttp.IsRetryable(err) {
			return retry.Unrecoverable(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to send callback, event_type: %s, url: %s, error: %w", string(event.Event), callbackURL, err)
	}

	ctxzap.Info(ctx, "callback sent successfully",
		zap.String("event_type", string(event.Event)),
		zap.String("callback_url", callbackURL),
		zap.String("request_id", requestID),
	)
	return nil
}

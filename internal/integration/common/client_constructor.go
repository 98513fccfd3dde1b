package common

import (
	"github.com/futig/songsmith/internal/config"
	pkgHTTP "github.com/futig/songsmith/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "songsmith/1.0"

// NewBaseConnector builds a JSON connector from the shared client settings.
// Auth uses the Bearer scheme unless opts override it.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger, opts ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	base := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithUserAgent(userAgent),
		pkgHTTP.WithRequestLogging(),
	}
	if len(opts) == 0 {
		opts = []pkgHTTP.HttpOpts{pkgHTTP.WithAuthToken(cfg.Token)}
	}

	return pkgHTTP.NewConnector(connCfg, append(base, opts...)...)
}

package inference

import (
	"context"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers with the occasion default for every request
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) InferStyle(ctx context.Context, mode entity.StyleMode, input, occasion string) (*songwriter.InferredStyle, error) {
	ctxzap.Info(ctx, "[MOCK] inferring music style", zap.String("mode", string(mode)), zap.String("occasion", occasion))

	style := songwriter.DefaultStyle(occasion)
	return &style, nil
}

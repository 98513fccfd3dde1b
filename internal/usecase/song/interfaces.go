package song

import (
	"context"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
)

type MusicConnector interface {
	SubmitSong(ctx context.Context, req entity.MusicJobRequest) (string, error)
	GetJob(ctx context.Context, jobID string) (*entity.Job, error)
}

type InferenceConnector interface {
	InferStyle(ctx context.Context, mode entity.StyleMode, input, occasion string) (*songwriter.InferredStyle, error)
}

type CallbackConnector interface {
	SendSongReady(ctx context.Context, callbackURL string, requestID string, data *entity.CallbackSongReadyData)
	SendError(ctx context.Context, callbackURL string, requestID string, message string, details map[string]any)
}

package song

import (
	"context"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
)

// SongUsecase defines the song operations exposed over HTTP
type SongUsecase interface {
	Compose(ctx context.Context, req *entity.ComposeRequest) (*songwriter.Song, error)
	Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.GenerateResponse, error)
	GetJob(ctx context.Context, jobID string) (*entity.Job, error)
	InferStyle(ctx context.Context, req *entity.InferStyleRequest) (*entity.InferStyleResponse, error)
	LyricSheet(ctx context.Context, versionID string, format entity.ResultFormat) (*entity.LyricSheet, error)
}

package song

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/jobstore"
	"github.com/futig/songsmith/internal/pkg/formatter"
	"github.com/futig/songsmith/internal/pkg/validator"
	"github.com/futig/songsmith/internal/repository"
	"github.com/futig/songsmith/internal/songwriter"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SongUsecase implements song composition and generation
type SongUsecase struct {
	versionRepo repository.SongVersionRepository
	jobs        jobstore.Store
	music       MusicConnector
	inference   InferenceConnector
	callback    CallbackConnector
	validator   *validator.Validator
	formatters  *formatter.Factory
	cfg         config.GenerationConfig
	logger      *zap.Logger

	// background watchers
	bgCtx    context.Context
	bgCancel context.CancelFunc
	wg       sync.WaitGroup
}

// NewUsecase creates a new song use case
func NewUsecase(
	versionRepo repository.SongVersionRepository,
	jobs jobstore.Store,
	music MusicConnector,
	inference InferenceConnector,
	callback CallbackConnector,
	validator *validator.Validator,
	formatters *formatter.Factory,
	cfg config.GenerationConfig,
	logger *zap.Logger,
) *SongUsecase {
	bgCtx, bgCancel := context.WithCancel(context.Background())

	return &SongUsecase{
		bgCtx:       bgCtx,
		bgCancel:    bgCancel,
		versionRepo: versionRepo,
		jobs:        jobs,
		music:       music,
		inference:   inference,
		callback:    callback,
		validator:   validator,
		formatters:  formatters,
		cfg:         cfg,
		logger:      logger,
	}
}

// Compose renders a style prompt and lyrics without persisting anything
func (uc *SongUsecase) Compose(ctx context.Context, req *entity.ComposeRequest) (*songwriter.Song, error) {
	if err := uc.validator.ValidateCompose(req); err != nil {
		return nil, err
	}

	song := songwriter.Compose(req.ToSongRequest())

	ctxzap.Info(ctx, "song composed",
		zap.Int("submissions", len(req.Submissions)),
		zap.Int("style_prompt_length", len([]rune(song.StylePrompt))),
		zap.Int("lyrics_length", len([]rune(song.Lyrics))),
	)

	return &song, nil
}

// Generate composes a new version of a project's song and submits it to the music provider
func (uc *SongUsecase) Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.GenerateResponse, error) {
	if err := uc.validator.ValidateGenerate(req); err != nil {
		return nil, err
	}

	used, err := uc.versionRepo.CountByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("count versions: %w", err)
	}

	// rejects early before inference; Create re-checks under the project lock
	allowed := uc.cfg.BaseRevisions + req.ExtraCredits
	if used >= allowed {
		return nil, fmt.Errorf("%w: %d of %d revisions used", entity.ErrRevisionLimit, used, allowed)
	}

	songReq := req.ToSongRequest()
	if songReq.Music.Inferred == nil && req.Music.StyleReferences != "" {
		style, _ := uc.resolveStyle(ctx, styleModeOf(req.Music.StyleMode), req.Music.StyleReferences, req.Occasion)
		songReq.Music.Inferred = &style
	}
	song := songwriter.Compose(songReq)

	version := entity.SongVersion{
		ID:          uuid.New().String(),
		ProjectID:   req.ProjectID,
		Title:       Title(req.HonoreeName, req.Occasion),
		StylePrompt: song.StylePrompt,
		Lyrics:      song.Lyrics,
		Status:      entity.VersionStatusGenerating,
	}
	if req.IterationFeedback != "" {
		version.Feedback = &req.IterationFeedback
	}

	created, err := uc.versionRepo.Create(ctx, version, allowed)
	if err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}

	jobID, err := uc.music.SubmitSong(ctx, entity.MusicJobRequest{
		StylePrompt:      song.StylePrompt,
		Lyrics:           song.Lyrics,
		InstrumentalTags: songReq.Music.Instruments,
	})
	if err != nil {
		msg := err.Error()
		if uerr := uc.versionRepo.UpdateStatus(ctx, created.ID, entity.VersionStatusFailed, nil, &msg); uerr != nil {
			ctxzap.Warn(ctx, "failed to mark version failed", zap.String("version_id", created.ID), zap.Error(uerr))
		}
		return nil, fmt.Errorf("submit song: %w", err)
	}

	if err := uc.versionRepo.AttachJob(ctx, created.ID, jobID); err != nil {
		msg := fmt.Sprintf("provider job %s could not be recorded: %v", jobID, err)
		if uerr := uc.versionRepo.UpdateStatus(ctx, created.ID, entity.VersionStatusFailed, nil, &msg); uerr != nil {
			ctxzap.Warn(ctx, "failed to mark version failed", zap.String("version_id", created.ID), zap.Error(uerr))
		}
		return nil, fmt.Errorf("attach job %s: %w", jobID, err)
	}
	if err := uc.jobs.Set(ctx, entity.Job{ID: jobID, Status: entity.JobStatusQueued}); err != nil {
		ctxzap.Warn(ctx, "failed to cache job", zap.String("job_id", jobID), zap.Error(err))
	}
	created.JobID = &jobID

	if req.CallbackURL != "" {
		uc.startWatch(ctx, created, req.CallbackURL, req.RequestID)
	}

	ctxzap.Info(ctx, "song generation started",
		zap.String("project_id", req.ProjectID),
		zap.String("version_id", created.ID),
		zap.Int("version_number", created.VersionNumber),
		zap.String("job_id", jobID),
	)

	return &entity.GenerateResponse{
		JobID:              jobID,
		VersionID:          created.ID,
		VersionNumber:      created.VersionNumber,
		Title:              created.Title,
		RevisionsRemaining: allowed - created.VersionNumber,
		StylePrompt:        created.StylePrompt,
		Lyrics:             created.Lyrics,
	}, nil
}

// GetJob polls the provider, caches the snapshot and settles the owning version on a terminal status
func (uc *SongUsecase) GetJob(ctx context.Context, jobID string) (*entity.Job, error) {
	cached, err := uc.jobs.Get(ctx, jobID)
	if err == nil && cached.Settled() {
		return &cached, nil
	}

	job, err := uc.music.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	if err := uc.jobs.Set(ctx, *job); err != nil {
		ctxzap.Warn(ctx, "failed to cache job", zap.String("job_id", jobID), zap.Error(err))
	}

	if job.Status.IsTerminal() {
		if _, err := uc.settleVersion(ctx, job); err != nil {
			return nil, err
		}
	}

	return job, nil
}

// settleVersion writes a terminal job outcome onto its song version
func (uc *SongUsecase) settleVersion(ctx context.Context, job *entity.Job) (*entity.SongVersion, error) {
	version, err := uc.versionRepo.GetByJobID(ctx, job.ID)
	if errors.Is(err, entity.ErrVersionNotFound) {
		// jobs submitted outside this service have no version
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get version by job: %w", err)
	}

	switch job.Status {
	case entity.JobStatusCompleted:
		if job.AudioURL == "" {
			return version, nil
		}
		err = uc.versionRepo.UpdateStatus(ctx, version.ID, entity.VersionStatusCompleted, &job.AudioURL, nil)
		version.Status = entity.VersionStatusCompleted
		version.AudioURL = &job.AudioURL
	case entity.JobStatusFailed:
		msg := job.Error
		err = uc.versionRepo.UpdateStatus(ctx, version.ID, entity.VersionStatusFailed, nil, &msg)
		version.Status = entity.VersionStatusFailed
		version.Error = &msg
	}
	if err != nil {
		return nil, fmt.Errorf("update version status: %w", err)
	}

	ctxzap.Info(ctx, "song version settled",
		zap.String("version_id", version.ID),
		zap.String("job_id", job.ID),
		zap.String("status", string(version.Status)),
	)

	return version, nil
}

// InferStyle returns an inferred style bundle and where it came from
func (uc *SongUsecase) InferStyle(ctx context.Context, req *entity.InferStyleRequest) (*entity.InferStyleResponse, error) {
	if err := uc.validator.ValidateInferStyle(req); err != nil {
		return nil, err
	}

	if req.Mode == entity.StyleModeSurprise {
		return &entity.InferStyleResponse{
			Style:  songwriter.DefaultStyle(req.Occasion),
			Source: entity.StyleSourceDefault,
		}, nil
	}

	style, source := uc.resolveStyle(ctx, req.Mode, req.Input, req.Occasion)
	return &entity.InferStyleResponse{Style: style, Source: source}, nil
}

// resolveStyle asks the inference connector and falls back to the occasion default on any failure
func (uc *SongUsecase) resolveStyle(ctx context.Context, mode entity.StyleMode, input, occasion string) (songwriter.InferredStyle, string) {
	if mode == entity.StyleModeSurprise {
		return songwriter.DefaultStyle(occasion), entity.StyleSourceDefault
	}

	style, err := uc.inference.InferStyle(ctx, mode, input, occasion)
	if err != nil || style == nil {
		ctxzap.Warn(ctx, "style inference failed, using occasion default", zap.Error(err))
		return songwriter.DefaultStyle(occasion), entity.StyleSourceDefault
	}

	return *style, entity.StyleSourceAI
}

// LyricSheet renders a stored version as a downloadable document
func (uc *SongUsecase) LyricSheet(ctx context.Context, versionID string, format entity.ResultFormat) (*entity.LyricSheet, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidFormat, format)
	}

	version, err := uc.versionRepo.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(formatter.Sheet{
		Title:       version.Title,
		StylePrompt: version.StylePrompt,
		Lyrics:      version.Lyrics,
	})
	if err != nil {
		return nil, fmt.Errorf("format lyric sheet: %w", err)
	}

	return &entity.LyricSheet{
		Filename:    fmt.Sprintf("%s-v%d%s", slug(version.Title), version.VersionNumber, f.FileExtension()),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// Title is the display title of a generated song
func Title(honoree, occasion string) string {
	return fmt.Sprintf("For %s - %s", honoree, occasion)
}

func styleModeOf(m entity.StyleMode) entity.StyleMode {
	if m == "" {
		return entity.StyleModeSongs
	}
	return m
}

// slug keeps ASCII letters and digits, joining everything else with single dashes
func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case len(out) > 0 && out[len(out)-1] != '-':
			out = append(out, '-')
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "song"
	}
	return string(out)
}

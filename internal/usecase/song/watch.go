package song

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var errJobRunning = errors.New("job still running")

// startWatch polls the version's job in the background and reports the outcome to callbackURL
func (uc *SongUsecase) startWatch(ctx context.Context, version *entity.SongVersion, callbackURL, requestID string) {
	bgCtx := logger.AddFields(ctxzap.ToContext(uc.bgCtx, ctxzap.Extract(ctx)),
		zap.String("request_id", requestID),
		zap.String("action", "WatchSong-async"),
		zap.String("job_id", *version.JobID),
	)

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		uc.watch(bgCtx, version, callbackURL, requestID)
	}()
}

func (uc *SongUsecase) watch(ctx context.Context, version *entity.SongVersion, callbackURL, requestID string) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.WatchTimeout)
	defer cancel()

	jobID := *version.JobID
	var job *entity.Job

	err := retry.Do(
		func() error {
			j, err := uc.GetJob(ctx, jobID)
			if err != nil {
				if errors.Is(err, entity.ErrJobNotFound) || errors.Is(err, entity.ErrProviderRejected) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			if !j.Settled() {
				return errJobRunning
			}
			job = j
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(uc.cfg.WatchInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)

	details := map[string]any{
		"project_id":     version.ProjectID,
		"version_id":     version.ID,
		"version_number": version.VersionNumber,
		"job_id":         jobID,
	}

	if err != nil {
		ctxzap.Error(ctx, "song watch ended without a result", zap.Error(err))
		if ctx.Err() != nil && errors.Is(uc.bgCtx.Err(), context.Canceled) {
			// service shutdown, the job keeps running at the provider
			return
		}
		uc.callback.SendError(context.WithoutCancel(ctx), callbackURL, requestID, fmt.Sprintf("song generation did not finish: %v", err), details)
		return
	}

	if job.Status == entity.JobStatusFailed {
		details["error"] = job.Error
		uc.callback.SendError(ctx, callbackURL, requestID, "song generation failed", details)
		return
	}

	uc.callback.SendSongReady(ctx, callbackURL, requestID, &entity.CallbackSongReadyData{
		ProjectID:     version.ProjectID,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		JobID:         jobID,
		AudioURL:      job.AudioURL,
	})
}

// Shutdown stops background watchers and waits for them to return
func (uc *SongUsecase) Shutdown(ctx context.Context) error {
	uc.bgCancel()

	done := make(chan struct{})
	go func() {
		uc.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

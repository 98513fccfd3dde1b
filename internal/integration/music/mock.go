package music

import (
	"context"
	"fmt"
	"sync"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/jobstore"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector simulates the provider lifecycle: queued, then processing, then completed on successive polls
type MockConnector struct {
	store  jobstore.Store
	logger *zap.Logger

	mu    sync.Mutex
	polls map[string]int
}

func NewMockConnector(store jobstore.Store, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		store:  store,
		logger: logger,
		polls:  make(map[string]int),
	}
}

func (m *MockConnector) SubmitSong(ctx context.Context, req entity.MusicJobRequest) (string, error) {
	jobID := "mock-" + uuid.NewString()

	ctxzap.Info(ctx, "[MOCK] submitting song",
		zap.String("job_id", jobID),
		zap.Int("prompt_length", len([]rune(FitPrompt(req.StylePrompt)))),
	)

	if err := m.store.Set(ctx, entity.Job{ID: jobID, Status: entity.JobStatusQueued}); err != nil {
		return "", fmt.Errorf("store mock job: %w", err)
	}
	return jobID, nil
}

func (m *MockConnector) GetJob(ctx context.Context, jobID string) (*entity.Job, error) {
	job, err := m.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.Status.IsTerminal() {
		if m.poll(jobID) >= 2 {
			job.Status = entity.JobStatusCompleted
			job.AudioURL = fmt.Sprintf("/mock/audio/%s.mp3", jobID)
		} else {
			job.Status = entity.JobStatusProcessing
		}
		if err := m.store.Set(ctx, job); err != nil {
			return nil, fmt.Errorf("store mock job: %w", err)
		}
	}

	ctxzap.Info(ctx, "[MOCK] polled song job", zap.String("job_id", jobID), zap.String("status", string(job.Status)))
	return &job, nil
}

// poll counts a status request and returns the total so far; finished jobs are forgotten
func (m *MockConnector) poll(jobID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.polls[jobID]++
	n := m.polls[jobID]
	if n >= 2 {
		delete(m.polls, jobID)
	}
	return n
}

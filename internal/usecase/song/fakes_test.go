package song

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
)

type fakeVersions struct {
	mu        sync.Mutex
	versions  map[string]*entity.SongVersion
	createFn  func(entity.SongVersion) error
	attachErr error
	// staleCount makes CountByProject report zero, as a reader racing another writer would
	staleCount bool
}

func newFakeVersions() *fakeVersions {
	return &fakeVersions{versions: map[string]*entity.SongVersion{}}
}

func (f *fakeVersions) Create(_ context.Context, v entity.SongVersion, limit int) (*entity.SongVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createFn != nil {
		if err := f.createFn(v); err != nil {
			return nil, err
		}
	}

	n, used := 0, 0
	for _, existing := range f.versions {
		if existing.ProjectID != v.ProjectID {
			continue
		}
		used++
		if existing.VersionNumber > n {
			n = existing.VersionNumber
		}
	}
	if used >= limit {
		return nil, fmt.Errorf("%w: %d of %d revisions used", entity.ErrRevisionLimit, used, limit)
	}
	v.VersionNumber = n + 1
	v.CreatedAt = time.Now()
	f.versions[v.ID] = &v

	out := v
	return &out, nil
}

func (f *fakeVersions) Get(_ context.Context, id string) (*entity.SongVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.versions[id]
	if !ok {
		return nil, entity.ErrVersionNotFound
	}
	out := *v
	return &out, nil
}

func (f *fakeVersions) GetByJobID(_ context.Context, jobID string) (*entity.SongVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.versions {
		if v.JobID != nil && *v.JobID == jobID {
			out := *v
			return &out, nil
		}
	}
	return nil, entity.ErrVersionNotFound
}

func (f *fakeVersions) CountByProject(_ context.Context, projectID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleCount {
		return 0, nil
	}
	n := 0
	for _, v := range f.versions {
		if v.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeVersions) AttachJob(_ context.Context, id, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	v, ok := f.versions[id]
	if !ok {
		return entity.ErrVersionNotFound
	}
	v.JobID = &jobID
	return nil
}

func (f *fakeVersions) UpdateStatus(_ context.Context, id string, status entity.VersionStatus, audioURL, errMsg *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.versions[id]
	if !ok {
		return entity.ErrVersionNotFound
	}
	v.Status = status
	if audioURL != nil {
		v.AudioURL = audioURL
	}
	v.Error = errMsg
	return nil
}

func (f *fakeVersions) get(id string) entity.SongVersion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.versions[id]
}

// fakeMusic plays back a scripted list of statuses per poll
type fakeMusic struct {
	mu        sync.Mutex
	submitted []entity.MusicJobRequest
	submitErr error
	script    []entity.Job
	polls     int
	getErr    error
}

func (f *fakeMusic) SubmitSong(_ context.Context, req entity.MusicJobRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return "job-1", nil
}

func (f *fakeMusic) GetJob(_ context.Context, jobID string) (*entity.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.script) == 0 {
		return &entity.Job{ID: jobID, Status: entity.JobStatusProcessing}, nil
	}
	i := min(f.polls, len(f.script)-1)
	f.polls++
	job := f.script[i]
	job.ID = jobID
	return &job, nil
}

func (f *fakeMusic) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}

type fakeInference struct {
	style *songwriter.InferredStyle
	err   error
	calls int
}

func (f *fakeInference) InferStyle(_ context.Context, _ entity.StyleMode, _, _ string) (*songwriter.InferredStyle, error) {
	f.calls++
	return f.style, f.err
}

type callbackCall struct {
	url     string
	event   entity.CallbackEventType
	ready   *entity.CallbackSongReadyData
	message string
	details map[string]any
}

type fakeCallback struct {
	calls chan callbackCall
}

func newFakeCallback() *fakeCallback {
	return &fakeCallback{calls: make(chan callbackCall, 4)}
}

func (f *fakeCallback) SendSongReady(_ context.Context, callbackURL string, _ string, data *entity.CallbackSongReadyData) {
	f.calls <- callbackCall{url: callbackURL, event: entity.CallbackEventTypeSongReady, ready: data}
}

func (f *fakeCallback) SendError(_ context.Context, callbackURL string, _ string, message string, details map[string]any) {
	f.calls <- callbackCall{url: callbackURL, event: entity.CallbackEventTypeError, message: message, details: details}
}

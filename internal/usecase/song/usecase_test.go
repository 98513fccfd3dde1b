package song

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/jobstore"
	"github.com/futig/songsmith/internal/pkg/formatter"
	"github.com/futig/songsmith/internal/pkg/validator"
	"github.com/futig/songsmith/internal/songwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testDeps struct {
	versions  *fakeVersions
	jobs      *jobstore.CacheStore
	music     *fakeMusic
	inference *fakeInference
	callback  *fakeCallback
}

func newTestUsecase(t *testing.T) (*SongUsecase, *testDeps) {
	t.Helper()
	d := &testDeps{
		versions:  newFakeVersions(),
		jobs:      jobstore.NewCacheStore(time.Minute, time.Minute),
		music:     &fakeMusic{},
		inference: &fakeInference{},
		callback:  newFakeCallback(),
	}

	uc := NewUsecase(d.versions, d.jobs, d.music, d.inference, d.callback,
		validator.NewValidator(), formatter.NewFactory(),
		config.GenerationConfig{BaseRevisions: 3, WatchInterval: time.Millisecond, WatchTimeout: time.Second},
		zap.NewNop())
	t.Cleanup(func() { _ = uc.Shutdown(context.Background()) })

	return uc, d
}

func quickRequest() entity.ComposeRequest {
	return entity.ComposeRequest{
		HonoreeName: "Ana",
		Occasion:    "Birthday",
		Submissions: []songwriter.AnswerSet{{Answers: map[string]any{
			"admire": "her laugh",
			"memory": "the lake trip",
		}}},
		Tone: songwriter.Tone{HeartfeltFunny: 8, IntimateAnthem: 2, MinimalLyrical: 6},
		Music: entity.MusicRequest{MusicPreferences: songwriter.MusicPreferences{
			Genres:     []string{"Pop"},
			Tempo:      songwriter.TempoUpbeat,
			VocalStyle: songwriter.VocalFemale,
		}},
	}
}

func generateRequest(projectID string) *entity.GenerateRequest {
	return &entity.GenerateRequest{ComposeRequest: quickRequest(), ProjectID: projectID}
}

func TestCompose(t *testing.T) {
	uc, _ := newTestUsecase(t)
	req := quickRequest()

	song, err := uc.Compose(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, songwriter.Compose(req.ToSongRequest()), *song)
	assert.True(t, strings.HasSuffix(song.StylePrompt, "avoid abrupt ending, avoid mumbling, clear pronunciation"))
	assert.Contains(t, song.Lyrics, "the lake trip\nher laugh\n")
}

func TestCompose_Invalid(t *testing.T) {
	uc, _ := newTestUsecase(t)
	req := quickRequest()
	req.HonoreeName = ""

	_, err := uc.Compose(context.Background(), &req)
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestGenerate(t *testing.T) {
	uc, d := newTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Generate(ctx, generateRequest("p1"))
	require.NoError(t, err)

	assert.Equal(t, "job-1", resp.JobID)
	assert.Equal(t, 1, resp.VersionNumber)
	assert.Equal(t, "For Ana - Birthday", resp.Title)
	assert.Equal(t, 2, resp.RevisionsRemaining)

	stored := d.versions.get(resp.VersionID)
	assert.Equal(t, entity.VersionStatusGenerating, stored.Status)
	require.NotNil(t, stored.JobID)
	assert.Equal(t, "job-1", *stored.JobID)

	require.Len(t, d.music.submitted, 1)
	assert.Equal(t, resp.StylePrompt, d.music.submitted[0].StylePrompt)
	assert.Equal(t, resp.Lyrics, d.music.submitted[0].Lyrics)

	job, err := d.jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusQueued, job.Status)
}

func TestGenerate_RevisionLimit(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := uc.Generate(ctx, generateRequest("p1"))
		require.NoError(t, err)
		assert.Equal(t, 2-i, resp.RevisionsRemaining)
	}

	_, err := uc.Generate(ctx, generateRequest("p1"))
	assert.ErrorIs(t, err, entity.ErrRevisionLimit)

	req := generateRequest("p1")
	req.ExtraCredits = 1
	resp, err := uc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.VersionNumber)
	assert.Equal(t, 0, resp.RevisionsRemaining)

	// other projects have their own budget
	_, err = uc.Generate(ctx, generateRequest("p2"))
	assert.NoError(t, err)
}

func TestGenerate_RevisionLimitEnforcedOnCreate(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.versions.staleCount = true
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Generate(ctx, generateRequest("p1"))
		require.NoError(t, err)
	}

	_, err := uc.Generate(ctx, generateRequest("p1"))
	require.ErrorIs(t, err, entity.ErrRevisionLimit)
	assert.Len(t, d.music.submitted, 3)
	assert.Len(t, d.versions.versions, 3)
}

func TestGenerate_ConcurrentRequestsRespectLimit(t *testing.T) {
	uc, d := newTestUsecase(t)

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Generate(context.Background(), generateRequest("p1"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, limited := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, entity.ErrRevisionLimit):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, 3, limited)
	assert.Len(t, d.versions.versions, 3)
}

func TestGenerate_AttachFailureMarksVersionFailed(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.versions.attachErr = errors.New("connection reset")

	_, err := uc.Generate(context.Background(), generateRequest("p1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job-1")

	require.Len(t, d.versions.versions, 1)
	for _, v := range d.versions.versions {
		assert.Equal(t, entity.VersionStatusFailed, v.Status)
		require.NotNil(t, v.Error)
		assert.Contains(t, *v.Error, "job-1")
	}
}

func TestGenerate_SubmitFailureMarksVersionFailed(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.music.submitErr = entity.ErrProviderRejected

	_, err := uc.Generate(context.Background(), generateRequest("p1"))
	require.ErrorIs(t, err, entity.ErrProviderRejected)

	require.Len(t, d.versions.versions, 1)
	for _, v := range d.versions.versions {
		assert.Equal(t, entity.VersionStatusFailed, v.Status)
		require.NotNil(t, v.Error)
	}
}

func TestGenerate_InfersStyleFromReferences(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.inference.style = &songwriter.InferredStyle{Genres: []string{"Indie"}, Mood: "dreamy"}

	req := generateRequest("p1")
	req.Music.StyleReferences = "Phoebe Bridgers"

	resp, err := uc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, d.inference.calls)
	assert.True(t, strings.HasPrefix(resp.StylePrompt, "Indie, dreamy mood, "))
}

func TestGenerate_InferenceFailureFallsBackToDefault(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.inference.err = entity.ErrProviderUnavailable

	req := generateRequest("p1")
	req.Music.StyleReferences = "Phoebe Bridgers"

	resp, err := uc.Generate(context.Background(), req)
	require.NoError(t, err)

	// birthday default
	assert.True(t, strings.HasPrefix(resp.StylePrompt, "Pop, R&B/Soul, celebratory mood"))
}

func TestGenerate_SuppliedInferredSkipsInference(t *testing.T) {
	uc, d := newTestUsecase(t)

	req := generateRequest("p1")
	req.Music.StyleReferences = "Phoebe Bridgers"
	req.Music.Inferred = &songwriter.InferredStyle{Genres: []string{"Jazz"}}

	_, err := uc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, d.inference.calls)
}

func TestGetJob_SettlesVersion(t *testing.T) {
	uc, d := newTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Generate(ctx, generateRequest("p1"))
	require.NoError(t, err)

	d.music.script = []entity.Job{
		{Status: entity.JobStatusProcessing},
		{Status: entity.JobStatusCompleted, AudioURL: "https://cdn/ana.mp3"},
	}

	job, err := uc.GetJob(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusProcessing, job.Status)
	assert.Equal(t, entity.VersionStatusGenerating, d.versions.get(resp.VersionID).Status)

	job, err = uc.GetJob(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, job.Status)

	v := d.versions.get(resp.VersionID)
	assert.Equal(t, entity.VersionStatusCompleted, v.Status)
	require.NotNil(t, v.AudioURL)
	assert.Equal(t, "https://cdn/ana.mp3", *v.AudioURL)

	// settled jobs are served from the store
	_, err = uc.GetJob(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, 2, d.music.pollCount())
}

func TestGetJob_Failed(t *testing.T) {
	uc, d := newTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Generate(ctx, generateRequest("p1"))
	require.NoError(t, err)
	d.music.script = []entity.Job{{Status: entity.JobStatusFailed, Error: "content policy"}}

	job, err := uc.GetJob(ctx, resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, job.Status)

	v := d.versions.get(resp.VersionID)
	assert.Equal(t, entity.VersionStatusFailed, v.Status)
	require.NotNil(t, v.Error)
	assert.Equal(t, "content policy", *v.Error)
}

func TestGetJob_UnknownJobWithoutVersion(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.music.script = []entity.Job{{Status: entity.JobStatusCompleted, AudioURL: "https://cdn/x.mp3"}}

	job, err := uc.GetJob(context.Background(), "foreign-job")
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, job.Status)
}

func TestGetJob_NotFound(t *testing.T) {
	uc, d := newTestUsecase(t)
	d.music.getErr = entity.ErrJobNotFound

	_, err := uc.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrJobNotFound)
}

func TestInferStyle(t *testing.T) {
	uc, d := newTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.InferStyle(ctx, &entity.InferStyleRequest{Mode: entity.StyleModeSurprise, Occasion: "Wedding"})
	require.NoError(t, err)
	assert.Equal(t, entity.StyleSourceDefault, resp.Source)
	assert.Equal(t, songwriter.DefaultStyle("Wedding"), resp.Style)
	assert.Zero(t, d.inference.calls)

	d.inference.style = &songwriter.InferredStyle{Genres: []string{"Rock"}, Mood: "gritty"}
	resp, err = uc.InferStyle(ctx, &entity.InferStyleRequest{Mode: entity.StyleModeSongs, Input: "AC/DC"})
	require.NoError(t, err)
	assert.Equal(t, entity.StyleSourceAI, resp.Source)
	assert.Equal(t, "gritty", resp.Style.Mood)

	d.inference.style, d.inference.err = nil, errors.New("timeout")
	resp, err = uc.InferStyle(ctx, &entity.InferStyleRequest{Mode: entity.StyleModeVibe, Input: "cozy", Occasion: "retirement"})
	require.NoError(t, err)
	assert.Equal(t, entity.StyleSourceDefault, resp.Source)
	assert.Equal(t, "nostalgic", resp.Style.Mood)

	_, err = uc.InferStyle(ctx, &entity.InferStyleRequest{Mode: entity.StyleModeVibe})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestLyricSheet(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.Generate(ctx, generateRequest("p1"))
	require.NoError(t, err)

	sheet, err := uc.LyricSheet(ctx, resp.VersionID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "for-ana-birthday-v1.md", sheet.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", sheet.ContentType)
	assert.True(t, strings.HasPrefix(string(sheet.Data), "# For Ana - Birthday\n"))
	assert.Contains(t, string(sheet.Data), "## Chorus")

	_, err = uc.LyricSheet(ctx, resp.VersionID, "odt")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)

	_, err = uc.LyricSheet(ctx, "00000000-0000-0000-0000-000000000000", entity.FormatPDF)
	assert.ErrorIs(t, err, entity.ErrVersionNotFound)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "for-ana-birthday", slug("For Ana - Birthday"))
	assert.Equal(t, "for-jos-retirement", slug("For José - Retirement!"))
	assert.Equal(t, "song", slug("¡¡!!"))
}

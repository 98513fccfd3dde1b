package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeRequest_ToSongRequest(t *testing.T) {
	body := `{
		"honoree_name": "Maya",
		"occasion": "Birthday",
		"submissions": [{"answers": {"memory": "the lake trip"}, "must_include_lines": ["Happy birthday Maya"]}],
		"must_include_items": ["Biscuit the dog"],
		"topics_to_avoid": ["work"],
		"tone": {"heartfelt_funny": 30},
		"music": {"genres": ["Folk"], "tempo": "slow", "style_mode": "vibe", "style_references": "campfire"}
	}`

	var req ComposeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	got := req.ToSongRequest()
	assert.Equal(t, "Maya", got.Honoree)
	assert.Equal(t, "Birthday", got.Occasion)
	require.Len(t, got.Submissions, 1)
	assert.Equal(t, "the lake trip", got.Submissions[0].Answers["memory"])
	assert.Equal(t, []string{"Biscuit the dog"}, got.Constraints.MustIncludeItems)
	assert.Equal(t, []string{"work"}, got.Constraints.TopicsToAvoid)
	assert.Equal(t, 30, got.Tone.HeartfeltFunny)
	assert.Equal(t, []string{"Folk"}, got.Music.Genres)
	assert.Equal(t, StyleModeVibe, req.Music.StyleMode)
	assert.Equal(t, "campfire", req.Music.StyleReferences)
}

func TestGenerateRequest_IgnoresServerFields(t *testing.T) {
	var req GenerateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"honoree_name":"Maya","project_id":"spoofed","extra_credits":2}`), &req))

	assert.Equal(t, "Maya", req.HonoreeName)
	assert.Empty(t, req.ProjectID)
	assert.Equal(t, 2, req.ExtraCredits)
}

func TestJob_Settled(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want bool
	}{
		{"queued", Job{Status: JobStatusQueued}, false},
		{"processing", Job{Status: JobStatusProcessing}, false},
		{"completed without audio", Job{Status: JobStatusCompleted}, false},
		{"completed with audio", Job{Status: JobStatusCompleted, AudioURL: "https://cdn/a.mp3"}, true},
		{"failed", Job{Status: JobStatusFailed}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.Settled())
		})
	}
}

func TestResultFormat_IsValid(t *testing.T) {
	assert.True(t, FormatMarkdown.IsValid())
	assert.True(t, FormatPDF.IsValid())
	assert.True(t, FormatDOCX.IsValid())
	assert.False(t, ResultFormat("markdown").IsValid())
}

func TestStyleMode_Validate(t *testing.T) {
	assert.NoError(t, StyleModeSurprise.Validate())
	assert.Error(t, StyleMode("random").Validate())
}

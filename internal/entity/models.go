package entity

import (
	"fmt"
	"time"
)

type VersionStatus string

const (
	VersionStatusGenerating VersionStatus = "generating"
	VersionStatusCompleted  VersionStatus = "completed"
	VersionStatusFailed     VersionStatus = "failed"
)

type JobStatus string

// Job status as reported by the music provider, normalised
const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether the job will not change status any more.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type StyleMode string

const (
	StyleModeSongs    StyleMode = "songs"
	StyleModeVibe     StyleMode = "vibe"
	StyleModeSurprise StyleMode = "surprise"
)

func (m StyleMode) Validate() error {
	switch m {
	case StyleModeSongs, StyleModeVibe, StyleModeSurprise:
		return nil
	default:
		return fmt.Errorf("unknown style mode: %s", m)
	}
}

// SongVersion is one generation attempt for a project
type SongVersion struct {
	ID            string        `json:"id"`
	ProjectID     string        `json:"project_id"`
	VersionNumber int           `json:"version_number"`
	Title         string        `json:"title"`
	StylePrompt   string        `json:"style_prompt"`
	Lyrics        string        `json:"lyrics"`
	Feedback      *string       `json:"iteration_feedback,omitempty"`
	Status        VersionStatus `json:"status"`
	JobID         *string       `json:"job_id,omitempty"`
	AudioURL      *string       `json:"audio_url,omitempty"`
	Error         *string       `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Job is the provider-side generation job for a song version
type Job struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	AudioURL  string    `json:"audio_url,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settled reports whether the job has its final outcome: failed, or completed with audio
func (j Job) Settled() bool {
	return j.Status == JobStatusFailed || (j.Status == JobStatusCompleted && j.AudioURL != "")
}

// MusicJobRequest is the envelope submitted to a music provider
type MusicJobRequest struct {
	StylePrompt      string
	Lyrics           string
	InstrumentalTags []string
}

package entity

import (
	"github.com/futig/songsmith/internal/songwriter"
)

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// MusicRequest carries the music preferences plus optional references the
// server can run style inference on when no inferred bundle is supplied.
type MusicRequest struct {
	songwriter.MusicPreferences
	StyleMode       StyleMode `json:"style_mode,omitempty"`
	StyleReferences string    `json:"style_references,omitempty"`
}

type ComposeRequest struct {
	HonoreeName   string                 `json:"honoree_name"`
	Occasion      string                 `json:"occasion"`
	Submissions   []songwriter.AnswerSet `json:"submissions"`
	MustInclude   []string               `json:"must_include_items"`
	TopicsToAvoid []string               `json:"topics_to_avoid"`
	Tone          songwriter.Tone        `json:"tone"`
	Music         MusicRequest           `json:"music"`
}

// ToSongRequest maps the wire request onto the songwriter input.
func (r *ComposeRequest) ToSongRequest() songwriter.Request {
	return songwriter.Request{
		Honoree:     r.HonoreeName,
		Occasion:    r.Occasion,
		Submissions: r.Submissions,
		Constraints: songwriter.Constraints{
			MustIncludeItems: r.MustInclude,
			TopicsToAvoid:    r.TopicsToAvoid,
		},
		Tone:  r.Tone,
		Music: r.Music.MusicPreferences,
	}
}

type ComposeResponse struct {
	StylePrompt string `json:"style_prompt"`
	Lyrics      string `json:"lyrics"`
}

type GenerateRequest struct {
	ComposeRequest
	ProjectID         string `json:"-"`
	IterationFeedback string `json:"iteration_feedback,omitempty"`
	ExtraCredits      int    `json:"extra_credits,omitempty"`
	CallbackURL       string `json:"callback_url,omitempty"`
	RequestID         string `json:"-"`
}

type GenerateResponse struct {
	JobID              string `json:"job_id"`
	VersionID          string `json:"version_id"`
	VersionNumber      int    `json:"version_number"`
	Title              string `json:"title"`
	RevisionsRemaining int    `json:"revisions_remaining"`
	StylePrompt        string `json:"style_prompt"`
	Lyrics             string `json:"lyrics"`
}

type JobStatusResponse struct {
	JobID    string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	AudioURL string    `json:"audio_mp3_url,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type InferStyleRequest struct {
	Mode     StyleMode `json:"mode"`
	Input    string    `json:"input,omitempty"`
	Occasion string    `json:"occasion,omitempty"`
}

// Where an inferred style came from
const (
	StyleSourceAI      = "ai"
	StyleSourceDefault = "default"
)

type InferStyleResponse struct {
	Style  songwriter.InferredStyle `json:"style"`
	Source string                   `json:"source"`
}

// LyricSheet is a rendered lyric document ready for download
type LyricSheet struct {
	Filename    string
	ContentType string
	Data        []byte
}

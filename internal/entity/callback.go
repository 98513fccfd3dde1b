package entity

// CallbackEventType represents the type of callback event
type CallbackEventType string

const (
	CallbackEventTypeSongReady CallbackEventType = "songReady"
	CallbackEventTypeError     CallbackEventType = "error"
)

// CallbackEvent represents a callback event
type CallbackEvent struct {
	Event     CallbackEventType `json:"event"`
	Timestamp string            `json:"timestamp"` // ISO-8601 UTC
	Data      any               `json:"data"`
}

// CallbackSongReadyData represents data for song ready event
type CallbackSongReadyData struct {
	ProjectID     string `json:"project_id"`
	VersionID     string `json:"version_id"`
	VersionNumber int    `json:"version_number"`
	JobID         string `json:"job_id"`
	AudioURL      string `json:"audio_mp3_url"`
}

// CallbackErrorData represents data for error event
type CallbackErrorData struct {
	Error CallbackErrorDetails `json:"error"`
}

// CallbackErrorDetails contains error information
type CallbackErrorDetails struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"` // Context like ids, job status
}

package repository

import (
	"time"

	"github.com/futig/songsmith/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// songVersionRow mirrors one row of song_versions
type songVersionRow struct {
	ID            pgtype.UUID
	ProjectID     string
	VersionNumber int32
	Title         string
	StylePrompt   string
	Lyrics        string
	Feedback      pgtype.Text
	Status        string
	JobID         pgtype.Text
	AudioURL      pgtype.Text
	Error         pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (r *songVersionRow) scanTargets() []any {
	return []any{
		&r.ID, &r.ProjectID, &r.VersionNumber, &r.Title, &r.StylePrompt, &r.Lyrics,
		&r.Feedback, &r.Status, &r.JobID, &r.AudioURL, &r.Error, &r.CreatedAt, &r.UpdatedAt,
	}
}

func toEntitySongVersion(row *songVersionRow) *entity.SongVersion {
	return &entity.SongVersion{
		ID:            uuid.UUID(row.ID.Bytes).String(),
		ProjectID:     row.ProjectID,
		VersionNumber: int(row.VersionNumber),
		Title:         row.Title,
		StylePrompt:   row.StylePrompt,
		Lyrics:        row.Lyrics,
		Feedback:      textPtr(row.Feedback),
		Status:        entity.VersionStatus(row.Status),
		JobID:         textPtr(row.JobID),
		AudioURL:      textPtr(row.AudioURL),
		Error:         textPtr(row.Error),
		CreatedAt:     timeOf(row.CreatedAt),
		UpdatedAt:     timeOf(row.UpdatedAt),
	}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func toText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func timeOf(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

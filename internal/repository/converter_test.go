package repository

import (
	"testing"
	"time"

	"github.com/futig/songsmith/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEntitySongVersion(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	row := &songVersionRow{
		ID:            pgtype.UUID{Bytes: id, Valid: true},
		ProjectID:     "project-1",
		VersionNumber: 2,
		Title:         "For Ana - Birthday",
		Status:        "completed",
		JobID:         pgtype.Text{String: "job-1", Valid: true},
		AudioURL:      pgtype.Text{String: "https://cdn/a.mp3", Valid: true},
		CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
	}

	v := toEntitySongVersion(row)

	assert.Equal(t, id.String(), v.ID)
	assert.Equal(t, 2, v.VersionNumber)
	assert.Equal(t, entity.VersionStatusCompleted, v.Status)
	require.NotNil(t, v.JobID)
	assert.Equal(t, "job-1", *v.JobID)
	require.NotNil(t, v.AudioURL)
	assert.Nil(t, v.Error)
	assert.Equal(t, created, v.CreatedAt)
	assert.True(t, v.UpdatedAt.IsZero())
}

func TestToText(t *testing.T) {
	assert.False(t, toText(nil).Valid)

	s := "boom"
	assert.Equal(t, pgtype.Text{String: "boom", Valid: true}, toText(&s))
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/songsmith/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SongVersionRepository defines the interface for song version persistence
type SongVersionRepository interface {
	Create(ctx context.Context, version entity.SongVersion, limit int) (*entity.SongVersion, error)
	Get(ctx context.Context, id string) (*entity.SongVersion, error)
	GetByJobID(ctx context.Context, jobID string) (*entity.SongVersion, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	AttachJob(ctx context.Context, id, jobID string) error
	UpdateStatus(ctx context.Context, id string, status entity.VersionStatus, audioURL, errMsg *string) error
}

var _ SongVersionRepository = &SongVersionPostgres{}

const songVersionColumns = `id, project_id, version_number, title, style_prompt, lyrics,
	feedback, status, job_id, audio_url, error, created_at, updated_at`

// SongVersionPostgres implements SongVersionRepository using PostgreSQL
type SongVersionPostgres struct {
	db *pgxpool.Pool
}

func NewSongVersionPostgres(db *pgxpool.Pool) *SongVersionPostgres {
	return &SongVersionPostgres{
		db: db,
	}
}

// Create inserts a version and assigns the next version number of its project.
// Creates for one project are serialized by an advisory lock, so the revision
// limit check and the insert see the same count. A project already holding
// limit versions gets ErrRevisionLimit.
func (r *SongVersionPostgres) Create(ctx context.Context, version entity.SongVersion, limit int) (*entity.SongVersion, error) {
	versionID, err := uuid.Parse(version.ID)
	if err != nil {
		return nil, fmt.Errorf("parse version ID: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, version.ProjectID); err != nil {
		return nil, fmt.Errorf("lock project versions: %w", err)
	}

	var used int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM song_versions WHERE project_id = $1`, version.ProjectID).Scan(&used); err != nil {
		return nil, fmt.Errorf("count song versions: %w", err)
	}
	if int(used) >= limit {
		return nil, fmt.Errorf("%w: %d of %d revisions used", entity.ErrRevisionLimit, used, limit)
	}

	query := `
		INSERT INTO song_versions (id, project_id, version_number, title, style_prompt, lyrics, feedback, status, job_id)
		SELECT $1, $2, COALESCE(MAX(version_number), 0) + 1, $3, $4, $5, $6, $7, $8
		FROM song_versions WHERE project_id = $2
		RETURNING ` + songVersionColumns

	var row songVersionRow
	err = tx.QueryRow(ctx, query,
		pgtype.UUID{Bytes: versionID, Valid: true},
		version.ProjectID,
		version.Title,
		version.StylePrompt,
		version.Lyrics,
		toText(version.Feedback),
		string(version.Status),
		toText(version.JobID),
	).Scan(row.scanTargets()...)
	if err != nil {
		return nil, fmt.Errorf("create song version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit song version: %w", err)
	}

	return toEntitySongVersion(&row), nil
}

func (r *SongVersionPostgres) Get(ctx context.Context, id string) (*entity.SongVersion, error) {
	versionID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrVersionNotFound
	}

	return r.getOne(ctx, `SELECT `+songVersionColumns+` FROM song_versions WHERE id = $1`,
		pgtype.UUID{Bytes: versionID, Valid: true})
}

func (r *SongVersionPostgres) GetByJobID(ctx context.Context, jobID string) (*entity.SongVersion, error) {
	return r.getOne(ctx, `SELECT `+songVersionColumns+` FROM song_versions WHERE job_id = $1`, jobID)
}

func (r *SongVersionPostgres) getOne(ctx context.Context, query string, arg any) (*entity.SongVersion, error) {
	var row songVersionRow
	if err := r.db.QueryRow(ctx, query, arg).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get song version: %w", err)
	}

	return toEntitySongVersion(&row), nil
}

func (r *SongVersionPostgres) CountByProject(ctx context.Context, projectID string) (int, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM song_versions WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count song versions: %w", err)
	}

	return int(count), nil
}

func (r *SongVersionPostgres) AttachJob(ctx context.Context, id, jobID string) error {
	return r.exec(ctx, "attach job",
		`UPDATE song_versions SET job_id = $2, updated_at = NOW() WHERE id = $1`,
		id, jobID)
}

func (r *SongVersionPostgres) UpdateStatus(
	ctx context.Context,
	id string,
	status entity.VersionStatus,
	audioURL, errMsg *string,
) error {
	return r.exec(ctx, "update song version status",
		`UPDATE song_versions
		 SET status = $2, audio_url = COALESCE($3, audio_url), error = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, string(status), toText(audioURL), toText(errMsg))
}

func (r *SongVersionPostgres) exec(ctx context.Context, op string, query string, id string, args ...any) error {
	versionID, err := uuid.Parse(id)
	if err != nil {
		return entity.ErrVersionNotFound
	}

	tag, err := r.db.Exec(ctx, query, append([]any{pgtype.UUID{Bytes: versionID, Valid: true}}, args...)...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrVersionNotFound
	}

	return nil
}

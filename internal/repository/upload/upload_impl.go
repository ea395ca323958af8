package upload

import (
	"context"
	"errors"

	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const uploadColumns = `id, filename, stored_path, file_size, duration_seconds,
	video_start_time, video_end_time, resolution, video_codec, audio_codec,
	is_qualified, matched_period, validation_message, upload_date`

// uploadRepository implements Repository using PostgreSQL
type uploadRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &uploadRepository{
		pool: pool,
	}
}

// Create inserts a new upload record and fills in its generated ID
func (r *uploadRepository) Create(ctx context.Context, upload *model.VideoUpload) error {
	sql := `INSERT INTO video_uploads
		(filename, stored_path, file_size, duration_seconds, video_start_time, video_end_time,
		 resolution, video_codec, audio_codec, is_qualified, matched_period, validation_message, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.pool.QueryRow(ctx, sql,
		upload.Filename,
		upload.StoredPath,
		upload.FileSizeBytes,
		upload.DurationSeconds,
		upload.VideoStartTime,
		upload.VideoEndTime,
		upload.Resolution,
		upload.VideoCodec,
		upload.AudioCodec,
		upload.IsQualified,
		upload.MatchedPeriod,
		upload.ValidationMessage,
		upload.UploadDate,
	).Scan(&upload.ID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create upload")
	}
	return nil
}

// GetByID retrieves an upload by its ID
func (r *uploadRepository) GetByID(ctx context.Context, id int64) (*model.VideoUpload, error) {
	sql := "SELECT " + uploadColumns + " FROM video_uploads WHERE id = $1"
	row := r.pool.QueryRow(ctx, sql, id)

	upload, err := scanUpload(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "upload not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get upload")
	}
	return upload, nil
}

// List retrieves uploads ordered by upload date, newest first
func (r *uploadRepository) List(ctx context.Context, limit, offset int) ([]*model.VideoUpload, error) {
	sql := "SELECT " + uploadColumns + " FROM video_uploads ORDER BY upload_date DESC LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list uploads")
	}
	defer rows.Close()

	return collectUploads(rows)
}

// ListMissingEngagement retrieves uploads that have no engagement analysis yet
func (r *uploadRepository) ListMissingEngagement(ctx context.Context) ([]*model.VideoUpload, error) {
	sql := `SELECT ` + uploadColumns + ` FROM video_uploads u
		WHERE NOT EXISTS (SELECT 1 FROM engagement_analyses e WHERE e.upload_id = u.id)
		ORDER BY upload_date`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list uploads missing engagement")
	}
	defer rows.Close()

	return collectUploads(rows)
}

// Delete removes an upload record
func (r *uploadRepository) Delete(ctx context.Context, id int64) error {
	sql := "DELETE FROM video_uploads WHERE id = $1"
	_, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete upload")
	}
	return nil
}

func scanUpload(row pgx.Row) (*model.VideoUpload, error) {
	var u model.VideoUpload
	err := row.Scan(
		&u.ID,
		&u.Filename,
		&u.StoredPath,
		&u.FileSizeBytes,
		&u.DurationSeconds,
		&u.VideoStartTime,
		&u.VideoEndTime,
		&u.Resolution,
		&u.VideoCodec,
		&u.AudioCodec,
		&u.IsQualified,
		&u.MatchedPeriod,
		&u.ValidationMessage,
		&u.UploadDate,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUploads(rows pgx.Rows) ([]*model.VideoUpload, error) {
	uploads := []*model.VideoUpload{}
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan upload row")
		}
		uploads = append(uploads, upload)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate upload rows")
	}

	return uploads, nil
}

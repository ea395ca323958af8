package engagement

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const reportColumns = `id, upload_id, engagement_score, video_engagement_score, combined_engagement_score,
	clarity_score, confidence_score, overall_sentiment, emotional_tone, turn_taking_frequency,
	transcript, summary, filler_words, filler_word_total, speaking_gaps, total_gaps, total_gap_duration,
	speaker_count, speaker_segments, speaking_rate_wpm, total_words, engagement_timeline, created_at`

// engagementRepository implements Repository using PostgreSQL
type engagementRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &engagementRepository{
		pool: pool,
	}
}

// GetByUploadID retrieves the live report for an upload
func (r *engagementRepository) GetByUploadID(ctx context.Context, uploadID int64) (*model.EngagementReport, error) {
	sql := "SELECT " + reportColumns + " FROM engagement_analyses WHERE upload_id = $1"
	row := r.pool.QueryRow(ctx, sql, uploadID)

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "engagement analysis not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get engagement analysis")
	}
	return report, nil
}

// Exists reports whether an upload already has a live report
func (r *engagementRepository) Exists(ctx context.Context, uploadID int64) (bool, error) {
	sql := "SELECT EXISTS (SELECT 1 FROM engagement_analyses WHERE upload_id = $1)"
	var exists bool
	if err := r.pool.QueryRow(ctx, sql, uploadID).Scan(&exists); err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to check engagement analysis existence")
	}
	return exists, nil
}

// Replace atomically swaps the live report for an upload with a new one.
// Delete and insert run in one transaction so readers never observe an
// upload with zero or two reports.
func (r *engagementRepository) Replace(ctx context.Context, report *model.EngagementReport) error {
	fillerWords, err := json.Marshal(report.FillerWords)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode filler words")
	}
	speakingGaps, err := json.Marshal(report.SpeakingGaps)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode speaking gaps")
	}
	speakerSegments, err := json.Marshal(report.SpeakerSegments)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode speaker segments")
	}
	timeline, err := json.Marshal(report.Timeline)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode engagement timeline")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM engagement_analyses WHERE upload_id = $1", report.UploadID); err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete previous engagement analysis")
	}

	insertSQL := `INSERT INTO engagement_analyses
		(id, upload_id, engagement_score, video_engagement_score, combined_engagement_score,
		 clarity_score, confidence_score, overall_sentiment, emotional_tone, turn_taking_frequency,
		 transcript, summary, filler_words, filler_word_total, speaking_gaps, total_gaps, total_gap_duration,
		 speaker_count, speaker_segments, speaking_rate_wpm, total_words, engagement_timeline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err = tx.Exec(ctx, insertSQL,
		report.ID,
		report.UploadID,
		report.EngagementScore,
		report.VideoEngagementScore,
		report.CombinedEngagementScore,
		report.ClarityScore,
		report.ConfidenceScore,
		report.OverallSentiment,
		report.EmotionalTone,
		report.TurnTakingFrequency,
		report.Transcript,
		report.Summary,
		fillerWords,
		report.FillerWordTotal,
		speakingGaps,
		report.TotalGaps,
		report.TotalGapDuration,
		report.SpeakerCount,
		speakerSegments,
		report.SpeakingRateWPM,
		report.TotalWords,
		timeline,
		report.CreatedAt,
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to insert engagement analysis")
	}

	if err := tx.Commit(ctx); err != nil {
		return common.HandlePostgreSQLError(err, "failed to commit engagement analysis")
	}
	return nil
}

// DeleteByUploadID removes the live report for an upload
func (r *engagementRepository) DeleteByUploadID(ctx context.Context, uploadID int64) error {
	sql := "DELETE FROM engagement_analyses WHERE upload_id = $1"
	_, err := r.pool.Exec(ctx, sql, uploadID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete engagement analysis")
	}
	return nil
}

func scanReport(row pgx.Row) (*model.EngagementReport, error) {
	var report model.EngagementReport
	var fillerWords, speakingGaps, speakerSegments, timeline []byte

	err := row.Scan(
		&report.ID,
		&report.UploadID,
		&report.EngagementScore,
		&report.VideoEngagementScore,
		&report.CombinedEngagementScore,
		&report.ClarityScore,
		&report.ConfidenceScore,
		&report.OverallSentiment,
		&report.EmotionalTone,
		&report.TurnTakingFrequency,
		&report.Transcript,
		&report.Summary,
		&fillerWords,
		&report.FillerWordTotal,
		&speakingGaps,
		&report.TotalGaps,
		&report.TotalGapDuration,
		&report.SpeakerCount,
		&speakerSegments,
		&report.SpeakingRateWPM,
		&report.TotalWords,
		&timeline,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fillerWords, &report.FillerWords); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode filler words")
	}
	if err := json.Unmarshal(speakingGaps, &report.SpeakingGaps); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode speaking gaps")
	}
	if err := json.Unmarshal(speakerSegments, &report.SpeakerSegments); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode speaker segments")
	}
	if err := json.Unmarshal(timeline, &report.Timeline); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode engagement timeline")
	}

	return &report, nil
}

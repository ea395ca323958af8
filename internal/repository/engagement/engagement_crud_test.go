package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/metaview/metaview/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportColumnNames = []string{
	"id", "upload_id", "engagement_score", "video_engagement_score", "combined_engagement_score",
	"clarity_score", "confidence_score", "overall_sentiment", "emotional_tone", "turn_taking_frequency",
	"transcript", "summary", "filler_words", "filler_word_total", "speaking_gaps", "total_gaps", "total_gap_duration",
	"speaker_count", "speaker_segments", "speaking_rate_wpm", "total_words", "engagement_timeline", "created_at",
}

func sampleReport(createdAt time.Time) *model.EngagementReport {
	return &model.EngagementReport{
		ID:                      "0c9adf7a-6a1f-4b3e-9a6d-0d2f5cf3a111",
		UploadID:                42,
		EngagementScore:         80,
		VideoEngagementScore:    66,
		CombinedEngagementScore: 75,
		ClarityScore:            75,
		ConfidenceScore:         70,
		OverallSentiment:        "positive",
		EmotionalTone:           "moderate",
		TurnTakingFrequency:     0.2,
		Transcript:              "Good morning everyone.",
		Summary:                 "Good morning everyone.",
		FillerWords:             map[string]int{"um": 2},
		FillerWordTotal:         2,
		SpeakingGaps:            []model.SpeakingGap{{Start: 10, End: 12, Duration: 2}},
		TotalGaps:               1,
		TotalGapDuration:        2,
		SpeakerCount:            1,
		SpeakerSegments: []model.SpeakerSegment{
			{Speaker: "Speaker 1 (Faculty)", Start: 0, End: 60, Duration: 60, Percentage: 100},
		},
		SpeakingRateWPM: 120,
		TotalWords:      3,
		Timeline:        []model.TimelinePoint{{Minute: 1, Score: 55}},
		CreatedAt:       createdAt,
	}
}

func TestEngagementRepository_GetByUploadID(t *testing.T) {
	createdAt := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	want := sampleReport(createdAt)

	tests := []struct {
		name     string
		uploadID int64
		setup    func(mock pgxmock.PgxPoolIface)
		want     *model.EngagementReport
		wantErr  bool
	}{
		{
			name:     "report found",
			uploadID: 42,
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(reportColumnNames).
					AddRow(want.ID, int64(42), 80, 66, 75,
						75, 70, "positive", "moderate", 0.2,
						"Good morning everyone.", "Good morning everyone.",
						[]byte(`{"um":2}`), 2,
						[]byte(`[{"start":10,"end":12,"duration":2}]`), 1, 2.0,
						1, []byte(`[{"speaker":"Speaker 1 (Faculty)","start":0,"end":60,"duration":60,"percentage":100}]`),
						120, 3, []byte(`[{"minute":1,"score":55}]`), createdAt)
				mock.ExpectQuery("SELECT (.+) FROM engagement_analyses WHERE upload_id = \\$1").
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			want:    want,
			wantErr: false,
		},
		{
			name:     "report not found",
			uploadID: 7,
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM engagement_analyses WHERE upload_id = \\$1").
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(reportColumnNames))
			},
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.GetByUploadID(ctx, tt.uploadID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestEngagementRepository_Exists(t *testing.T) {
	tests := []struct {
		name     string
		uploadID int64
		exists   bool
	}{
		{name: "report exists", uploadID: 42, exists: true},
		{name: "no report yet", uploadID: 7, exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(tt.uploadID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.Exists(ctx, tt.uploadID)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestEngagementRepository_Replace(t *testing.T) {
	createdAt := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)

	t.Run("delete and insert in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		report := sampleReport(createdAt)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM engagement_analyses WHERE upload_id = \\$1").
			WithArgs(int64(42)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("INSERT INTO engagement_analyses").
			WithArgs(report.ID, report.UploadID, report.EngagementScore, report.VideoEngagementScore,
				report.CombinedEngagementScore, report.ClarityScore, report.ConfidenceScore,
				report.OverallSentiment, report.EmotionalTone, report.TurnTakingFrequency,
				report.Transcript, report.Summary,
				[]byte(`{"um":2}`), report.FillerWordTotal,
				[]byte(`[{"start":10,"end":12,"duration":2}]`), report.TotalGaps, report.TotalGapDuration,
				report.SpeakerCount,
				[]byte(`[{"speaker":"Speaker 1 (Faculty)","start":0,"end":60,"duration":60,"percentage":100}]`),
				report.SpeakingRateWPM, report.TotalWords,
				[]byte(`[{"minute":1,"score":55}]`), report.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := NewRepository(mock)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, repo.Replace(ctx, report))
		assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		report := sampleReport(createdAt)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM engagement_analyses WHERE upload_id = \\$1").
			WithArgs(int64(42)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("INSERT INTO engagement_analyses").
			WithArgs(report.ID, report.UploadID, report.EngagementScore, report.VideoEngagementScore,
				report.CombinedEngagementScore, report.ClarityScore, report.ConfidenceScore,
				report.OverallSentiment, report.EmotionalTone, report.TurnTakingFrequency,
				report.Transcript, report.Summary,
				[]byte(`{"um":2}`), report.FillerWordTotal,
				[]byte(`[{"start":10,"end":12,"duration":2}]`), report.TotalGaps, report.TotalGapDuration,
				report.SpeakerCount,
				[]byte(`[{"speaker":"Speaker 1 (Faculty)","start":0,"end":60,"duration":60,"percentage":100}]`),
				report.SpeakingRateWPM, report.TotalWords,
				[]byte(`[{"minute":1,"score":55}]`), report.CreatedAt).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		repo := NewRepository(mock)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		assert.Error(t, repo.Replace(ctx, report))
		assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
	})
}

func TestEngagementRepository_DeleteByUploadID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM engagement_analyses WHERE upload_id = \\$1").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewRepository(mock)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, repo.DeleteByUploadID(ctx, 42))
	assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
}

package model

import "time"

// PeriodWindow represents a named class-period interval within a day.
// Periods come from administration data and are not checked for overlap.
type PeriodWindow struct {
	Period      int    `json:"period" db:"period"`
	StartTime   string `json:"start_time" db:"start_time"`     // e.g. "08:00 AM" or "08:00"
	EndTime     string `json:"end_time" db:"end_time"`         // e.g. "08:45 AM"
	DisplayTime string `json:"display_time" db:"display_time"` // e.g. "08:00 AM - 08:45 AM"
}

// VideoFacts holds the raw container metadata extracted from a recording.
// CreationTime may be absent and DurationSeconds may be zero; both are
// handled states, not errors.
type VideoFacts struct {
	DurationSeconds int     `json:"duration_seconds"`
	CreationTime    *string `json:"creation_time,omitempty"` // assumed UTC, format varies by device
	Resolution      *string `json:"resolution,omitempty"`    // "1920x1080"
	VideoCodec      *string `json:"video_codec,omitempty"`
	AudioCodec      *string `json:"audio_codec,omitempty"`
	FileSizeBytes   int64   `json:"file_size_bytes"`
}

// VerdictStatus enumerates the outcomes of the timing qualifier.
type VerdictStatus string

const (
	StatusQualified           VerdictStatus = "qualified"
	StatusQualifiedLateStart  VerdictStatus = "qualified_late_start"
	StatusNotQualifiedLate    VerdictStatus = "not_qualified_late"
	StatusNotQualifiedEarly   VerdictStatus = "not_qualified_early"
	StatusNotQualifiedOverrun VerdictStatus = "not_qualified_overrun"
	StatusNoMatch             VerdictStatus = "no_match"
	StatusMissingTimestamp    VerdictStatus = "missing_timestamp"
	StatusUnparsableTimestamp VerdictStatus = "unparsable_timestamp"
	StatusPeriodNotFound      VerdictStatus = "period_not_found"
)

// TimingDetail carries the computed local times and minute arithmetic
// behind a verdict, for audit and display.
type TimingDetail struct {
	VideoStart        string `json:"video_start"`  // local wall-clock, "08:05:00 AM"
	VideoEnd          string `json:"video_end"`    // local wall-clock
	PeriodStart       string `json:"period_start"` // window's raw start string
	PeriodEnd         string `json:"period_end"`
	StartDelayMinutes int    `json:"start_delay_minutes"`
	EndOverrunMinutes int    `json:"end_overrun_minutes"`
	DurationMinutes   int    `json:"duration_minutes"`
}

// QualificationVerdict is the immutable result of the timing qualifier.
type QualificationVerdict struct {
	Status             VerdictStatus `json:"status"`
	IsQualified        bool          `json:"is_qualified"`
	MatchedPeriod      *int          `json:"matched_period,omitempty"`
	MatchedPeriodLabel *string       `json:"matched_period_label,omitempty"`
	Message            string        `json:"message"`
	Timing             *TimingDetail `json:"timing,omitempty"`
}

// TranscriptSegment is one timestamped piece of the transcript, ordered by
// start time by the upstream engine.
type TranscriptSegment struct {
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
	Text  string  `json:"text"`
}

// SpeakingGap is a silence interval of at least the detection threshold.
type SpeakingGap struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// SpeakerSegment is a per-speaker talk-time summary. Segments are laid out
// back to back in descending talk-time order; real interleaving is discarded.
type SpeakerSegment struct {
	Speaker    string  `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
	Percentage float64 `json:"percentage"` // of attributed speaking time, not full video
}

// TimelinePoint is one per-minute engagement score.
type TimelinePoint struct {
	Minute int `json:"minute"` // 1-based
	Score  int `json:"score"`  // 0-100
}

// VideoUpload records one analyzed recording together with its timing verdict.
type VideoUpload struct {
	ID                int64     `json:"id" db:"id"`
	Filename          string    `json:"filename" db:"filename"`
	StoredPath        *string   `json:"stored_path,omitempty" db:"stored_path"`
	FileSizeBytes     int64     `json:"file_size_bytes" db:"file_size"`
	DurationSeconds   int       `json:"duration_seconds" db:"duration_seconds"`
	VideoStartTime    *string   `json:"video_start_time,omitempty" db:"video_start_time"` // local wall-clock display string
	VideoEndTime      *string   `json:"video_end_time,omitempty" db:"video_end_time"`
	Resolution        *string   `json:"resolution,omitempty" db:"resolution"`
	VideoCodec        *string   `json:"video_codec,omitempty" db:"video_codec"`
	AudioCodec        *string   `json:"audio_codec,omitempty" db:"audio_codec"`
	IsQualified       bool      `json:"is_qualified" db:"is_qualified"`
	MatchedPeriod     *int      `json:"matched_period,omitempty" db:"matched_period"`
	ValidationMessage string    `json:"validation_message" db:"validation_message"`
	UploadDate        time.Time `json:"upload_date" db:"upload_date"`
}

// EngagementReport is the fused per-video bundle of delivery-quality signals.
// At most one live report exists per upload; a forced recompute replaces it
// wholesale.
type EngagementReport struct {
	ID                      string           `json:"id" db:"id"` // fresh UUID per computation
	UploadID                int64            `json:"upload_id" db:"upload_id"`
	EngagementScore         int              `json:"engagement_score" db:"engagement_score"`
	VideoEngagementScore    int              `json:"video_engagement_score" db:"video_engagement_score"`
	CombinedEngagementScore int              `json:"combined_engagement_score" db:"combined_engagement_score"`
	ClarityScore            int              `json:"clarity_score" db:"clarity_score"`
	ConfidenceScore         int              `json:"confidence_score" db:"confidence_score"`
	OverallSentiment        string           `json:"overall_sentiment" db:"overall_sentiment"` // "positive" | "neutral"
	EmotionalTone           string           `json:"emotional_tone" db:"emotional_tone"`       // "active" | "moderate" | "calm"
	TurnTakingFrequency     float64          `json:"turn_taking_frequency" db:"turn_taking_frequency"` // speaker changes per minute
	Transcript              string           `json:"transcript" db:"transcript"`
	Summary                 string           `json:"summary" db:"summary"`
	FillerWords             map[string]int   `json:"filler_words" db:"filler_words"` // absent key means zero
	FillerWordTotal         int              `json:"filler_word_total" db:"filler_word_total"`
	SpeakingGaps            []SpeakingGap    `json:"speaking_gaps" db:"speaking_gaps"`
	TotalGaps               int              `json:"total_gaps" db:"total_gaps"`
	TotalGapDuration        float64          `json:"total_gap_duration" db:"total_gap_duration"`
	SpeakerCount            int              `json:"speaker_count" db:"speaker_count"`
	SpeakerSegments         []SpeakerSegment `json:"speaker_segments" db:"speaker_segments"`
	SpeakingRateWPM         int              `json:"speaking_rate_wpm" db:"speaking_rate_wpm"`
	TotalWords              int              `json:"total_words" db:"total_words"`
	Timeline                []TimelinePoint  `json:"engagement_timeline" db:"engagement_timeline"`
	CreatedAt               time.Time        `json:"created_at" db:"created_at"`
}

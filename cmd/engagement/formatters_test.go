package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metaview/metaview/internal/model"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{"zero", 0, "0s"},
		{"seconds only", 45, "45s"},
		{"minutes and seconds", 260, "4m 20s"},
		{"exact minutes", 300, "5m 0s"},
		{"hours", 3903, "1h 5m 3s"},
		{"exact hour", 3600, "1h 0m 0s"},
		{"negative clamps to zero", -7, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}

func TestFormatReport(t *testing.T) {
	report := &model.EngagementReport{
		ID:                      "b7e0c1b2-0000-0000-0000-000000000001",
		UploadID:                42,
		EngagementScore:         78,
		VideoEngagementScore:    64,
		CombinedEngagementScore: 73,
		ClarityScore:            70,
		ConfidenceScore:         68,
		OverallSentiment:        "positive",
		EmotionalTone:           "active",
		TurnTakingFrequency:     0.25,
		Summary:                 "Today we cover sorting.",
		FillerWords:             map[string]int{"um": 3, "uh": 1},
		FillerWordTotal:         4,
		TotalGaps:               2,
		TotalGapDuration:        65.4,
		SpeakerCount:            2,
		SpeakerSegments: []model.SpeakerSegment{
			{Speaker: "Speaker 1 (Faculty)", Start: 0, End: 480.5, Duration: 480.5, Percentage: 80.08},
			{Speaker: "Speaker 2", Start: 480.5, End: 600, Duration: 119.5, Percentage: 19.92},
		},
		SpeakingRateWPM: 130,
		TotalWords:      1170,
		Timeline: []model.TimelinePoint{
			{Minute: 1, Score: 80},
			{Minute: 2, Score: 55},
		},
		CreatedAt: time.Date(2025, 3, 18, 9, 40, 0, 0, time.UTC),
	}

	output := FormatReport(report)

	assert.Contains(t, output, "Engagement report for upload 42")
	assert.Contains(t, output, "Computed: 2025-03-18T09:40:00Z")
	assert.Contains(t, output, "Engagement:  78/100")
	assert.Contains(t, output, "Video:       64/100")
	assert.Contains(t, output, "Combined:    73/100")
	assert.Contains(t, output, "Sentiment: positive, tone: active")
	assert.Contains(t, output, "Speaking rate: 130 WPM over 1170 words")
	assert.Contains(t, output, "Filler words: 4 (um: 3, uh: 1)")
	assert.Contains(t, output, "Speaking gaps: 2 totaling 1m 5s")
	assert.Contains(t, output, "Speakers: 2, turn-taking: 0.25/min")
	assert.Contains(t, output, "Speaker 1 (Faculty): 8m 0s (80.1%)")
	assert.Contains(t, output, "Speaker 2: 1m 59s (19.9%)")
	assert.Contains(t, output, "Today we cover sorting.")
	assert.Contains(t, output, "Minute  1: ████████░░ 80")
	assert.Contains(t, output, "Minute  2: █████░░░░░ 55")
}

func TestFormatReport_MinimalReport(t *testing.T) {
	report := &model.EngagementReport{
		UploadID:         7,
		OverallSentiment: "neutral",
		EmotionalTone:    "calm",
		CreatedAt:        time.Date(2025, 3, 18, 9, 40, 0, 0, time.UTC),
	}

	output := FormatReport(report)

	assert.Contains(t, output, "Engagement report for upload 7")
	assert.Contains(t, output, "Sentiment: neutral, tone: calm")
	assert.Contains(t, output, "Filler words: 0\n")
	assert.NotContains(t, output, "Summary:")
	assert.NotContains(t, output, "Speakers:\n  ")
	assert.NotContains(t, output, "Timeline:")
}

func TestFormatFillerBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		fillers  map[string]int
		expected string
	}{
		{"descending by count", map[string]int{"uh": 1, "um": 3}, "um: 3, uh: 1"},
		{"tie broken by word", map[string]int{"like": 2, "basically": 2}, "basically: 2, like: 2"},
		{"single entry", map[string]int{"um": 5}, "um: 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFillerBreakdown(tt.fillers))
		})
	}
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", scoreBar(0))
	assert.Equal(t, "█████░░░░░", scoreBar(55))
	assert.Equal(t, "██████████", scoreBar(100))
	assert.Equal(t, "░░░░░░░░░░", scoreBar(-5))
	assert.Equal(t, "██████████", scoreBar(120))
}

package engagement

import (
	"fmt"
	"strings"
	"time"

	"github.com/metaview/metaview/internal/model"
)

// FormatDuration renders whole seconds as a compact human duration,
// e.g. "1h 5m 3s", "4m 20s", "45s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatReport renders an engagement report as a multi-section text block.
func FormatReport(report *model.EngagementReport) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("Engagement report for upload %d\n", report.UploadID))
	result.WriteString(fmt.Sprintf("Computed: %s\n\n", report.CreatedAt.Format(time.RFC3339)))

	result.WriteString("Scores:\n")
	result.WriteString(fmt.Sprintf("  Engagement:  %d/100\n", report.EngagementScore))
	result.WriteString(fmt.Sprintf("  Video:       %d/100\n", report.VideoEngagementScore))
	result.WriteString(fmt.Sprintf("  Combined:    %d/100\n", report.CombinedEngagementScore))
	result.WriteString(fmt.Sprintf("  Clarity:     %d/100\n", report.ClarityScore))
	result.WriteString(fmt.Sprintf("  Confidence:  %d/100\n", report.ConfidenceScore))

	result.WriteString("\nDelivery:\n")
	result.WriteString(fmt.Sprintf("  Sentiment: %s, tone: %s\n", report.OverallSentiment, report.EmotionalTone))
	result.WriteString(fmt.Sprintf("  Speaking rate: %d WPM over %d words\n", report.SpeakingRateWPM, report.TotalWords))
	result.WriteString(fmt.Sprintf("  Filler words: %d", report.FillerWordTotal))
	if len(report.FillerWords) > 0 {
		result.WriteString(fmt.Sprintf(" (%s)", formatFillerBreakdown(report.FillerWords)))
	}
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("  Speaking gaps: %d totaling %s\n",
		report.TotalGaps, FormatDuration(int(report.TotalGapDuration))))
	result.WriteString(fmt.Sprintf("  Speakers: %d, turn-taking: %.2f/min\n",
		report.SpeakerCount, report.TurnTakingFrequency))

	if len(report.SpeakerSegments) > 0 {
		result.WriteString("\nSpeakers:\n")
		for _, seg := range report.SpeakerSegments {
			result.WriteString(fmt.Sprintf("  %s: %s (%.1f%%)\n",
				seg.Speaker, FormatDuration(int(seg.Duration)), seg.Percentage))
		}
	}

	if report.Summary != "" {
		result.WriteString("\nSummary:\n")
		result.WriteString(fmt.Sprintf("  %s\n", report.Summary))
	}

	if len(report.Timeline) > 0 {
		result.WriteString("\nTimeline:\n")
		for _, point := range report.Timeline {
			result.WriteString(fmt.Sprintf("  Minute %2d: %s %d\n", point.Minute, scoreBar(point.Score), point.Score))
		}
	}

	return result.String()
}

// formatFillerBreakdown renders per-word filler counts in descending count
// order, ties broken by word.
func formatFillerBreakdown(fillers map[string]int) string {
	type entry struct {
		word  string
		count int
	}

	entries := make([]entry, 0, len(fillers))
	for word, count := range fillers {
		entries = append(entries, entry{word, count})
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].count > entries[i].count ||
				(entries[j].count == entries[i].count && entries[j].word < entries[i].word) {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: %d", e.word, e.count))
	}
	return strings.Join(parts, ", ")
}

// scoreBar renders a 0-100 score as a ten-slot bar
func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

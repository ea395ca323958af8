package analysis

import (
	"math"
	"strings"

	"github.com/metaview/metaview/internal/model"
)

// BuildTimeline projects transcript density onto fixed one-minute buckets.
// Each bucket accumulates fractional word counts from segments weighted by
// temporal overlap, then blends them with the overall engagement baseline.
// A non-positive duration yields a single point at the baseline.
func BuildTimeline(segments []model.TranscriptSegment, durationSeconds int, baseline int) []model.TimelinePoint {
	if durationSeconds <= 0 {
		return []model.TimelinePoint{{Minute: 1, Score: baseline}}
	}

	totalMinutes := (durationSeconds + 59) / 60
	if totalMinutes < 1 {
		totalMinutes = 1
	}

	points := make([]model.TimelinePoint, 0, totalMinutes)
	for minute := 1; minute <= totalMinutes; minute++ {
		bucketStart := float64((minute - 1) * 60)
		bucketEnd := float64(minute * 60)

		minuteWords := 0.0
		for _, seg := range segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			overlap := math.Min(seg.End, bucketEnd) - math.Max(seg.Start, bucketStart)
			if overlap <= 0 {
				continue
			}
			segDuration := math.Max(0.1, seg.End-seg.Start)
			words := float64(len(strings.Fields(text)))
			minuteWords += words * overlap / segDuration
		}

		score := ClampScore(float64(baseline)*0.65 + math.Min(35, minuteWords*1.1))
		points = append(points, model.TimelinePoint{Minute: minute, Score: score})
	}

	return points
}

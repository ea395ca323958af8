package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/metaview/metaview/internal/model"
)

// PrimarySpeakerLabel names the dominant speaker. Lectures are assumed to
// be faculty-led; identity recognition is out of scope.
const PrimarySpeakerLabel = "Speaker 1 (Faculty)"

// FallbackSpeaker synthesizes a single speaker spanning the full known
// duration at 100%, used whenever diarization is unavailable or rejected.
func FallbackSpeaker(durationSeconds int) (int, []model.SpeakerSegment) {
	d := float64(durationSeconds)
	return 1, []model.SpeakerSegment{{
		Speaker:    PrimarySpeakerLabel,
		Start:      0,
		End:        d,
		Duration:   d,
		Percentage: 100.0,
	}}
}

// LayoutSpeakers converts per-speaker cumulative talk time into synthetic
// non-overlapping segments, sorted descending by talk time. The largest
// share is labeled as faculty. Real temporal interleaving is discarded:
// segments are a summary, not a timeline. Returns ok=false when the
// diarized total is not positive; callers fall back to FallbackSpeaker.
func LayoutSpeakers(durations map[string]float64) (int, []model.SpeakerSegment, bool) {
	total := 0.0
	for _, d := range durations {
		total += d
	}
	if total <= 0 {
		return 0, nil, false
	}

	type speakerTime struct {
		label    string
		duration float64
	}
	ordered := make([]speakerTime, 0, len(durations))
	for label, d := range durations {
		ordered = append(ordered, speakerTime{label, d})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].duration != ordered[j].duration {
			return ordered[i].duration > ordered[j].duration
		}
		return ordered[i].label < ordered[j].label // stable order for equal shares
	})

	segments := make([]model.SpeakerSegment, 0, len(ordered))
	offset := 0.0
	for i, s := range ordered {
		label := PrimarySpeakerLabel
		if i > 0 {
			label = fmt.Sprintf("Speaker %d", i+1)
		}
		segments = append(segments, model.SpeakerSegment{
			Speaker:    label,
			Start:      roundTo2(offset),
			End:        roundTo2(offset + s.duration),
			Duration:   roundTo2(s.duration),
			Percentage: roundTo2(s.duration / total * 100),
		})
		offset += s.duration
	}

	return len(segments), segments, true
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

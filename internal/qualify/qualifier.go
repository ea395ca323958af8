package qualify

import (
	"fmt"
	"sort"
	"time"

	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/timeparse"
)

// DefaultGraceMinutes is the maximum tolerated delay after a window's start
// that still counts as qualified.
const DefaultGraceMinutes = 15

// Qualifier maps (video start, duration, period window set) to a
// QualificationVerdict. It is pure: no I/O, no external dependencies.
type Qualifier struct {
	GraceMinutes     int
	UTCOffsetMinutes int
}

// NewQualifier creates a Qualifier with the default grace period and
// UTC offset.
func NewQualifier() *Qualifier {
	return &Qualifier{
		GraceMinutes:     DefaultGraceMinutes,
		UTCOffsetMinutes: timeparse.DefaultUTCOffsetMinutes,
	}
}

// Qualify classifies a recording against the given period windows.
// videoStartRaw is the capture timestamp as extracted from the container
// ("" when absent). When targetPeriod is non-nil only that period is
// considered; otherwise windows are evaluated ascending by period number.
//
// Each window is classified with a fixed priority order and iteration stops
// at the first decisive classification, including negative ones. A video
// that narrowly misses an earlier window is reported against that window's
// failure and never reaches later windows.
func (q *Qualifier) Qualify(videoStartRaw string, durationSeconds int, windows []model.PeriodWindow, targetPeriod *int) model.QualificationVerdict {
	candidates := windows
	if targetPeriod != nil {
		candidates = nil
		for _, w := range windows {
			if w.Period == *targetPeriod {
				candidates = []model.PeriodWindow{w}
				break
			}
		}
		if candidates == nil {
			return model.QualificationVerdict{
				Status:  model.StatusPeriodNotFound,
				Message: fmt.Sprintf("Period %d not found in the system.", *targetPeriod),
			}
		}
	} else {
		candidates = make([]model.PeriodWindow, len(windows))
		copy(candidates, windows)
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Period < candidates[j].Period })
	}

	if videoStartRaw == "" {
		return model.QualificationVerdict{
			Status:  model.StatusMissingTimestamp,
			Message: "Could not extract video creation time. Please ensure the video has metadata.",
		}
	}

	parsed, err := timeparse.Timestamp(videoStartRaw)
	if err != nil {
		return model.QualificationVerdict{
			Status:  model.StatusUnparsableTimestamp,
			Message: fmt.Sprintf("Could not parse video start time: %s", videoStartRaw),
		}
	}

	videoStart := timeparse.ToLocal(parsed, q.UTCOffsetMinutes)
	videoEnd := videoStart.Add(time.Duration(durationSeconds) * time.Second)

	for _, window := range candidates {
		if verdict, decisive := q.classify(window, videoStart, videoEnd, durationSeconds); decisive {
			return verdict
		}
	}

	return model.QualificationVerdict{
		Status: model.StatusNoMatch,
		Message: fmt.Sprintf("❌ Video NOT QUALIFIED. Recording time (%s - %s) does not match any period timing.",
			clock(videoStart), clock(videoEnd)),
	}
}

// classify evaluates one window. The second return value is false when the
// window yields no decisive classification and iteration should continue.
func (q *Qualifier) classify(window model.PeriodWindow, videoStart, videoEnd time.Time, durationSeconds int) (model.QualificationVerdict, bool) {
	windowStart, err := timeparse.ClockTime(window.StartTime)
	if err != nil {
		return model.QualificationVerdict{}, false
	}
	windowEnd, err := timeparse.ClockTime(window.EndTime)
	if err != nil {
		return model.QualificationVerdict{}, false
	}

	// Comparisons use the time-of-day component only; calendar date is
	// discarded. Delay and overrun are whole minutes, seconds truncated.
	videoStartSec := timeparse.SecondOfDay(videoStart)
	videoEndSec := timeparse.SecondOfDay(videoEnd)
	windowStartSec := timeparse.SecondOfDay(windowStart)
	windowEndSec := timeparse.SecondOfDay(windowEnd)

	delay := timeparse.MinuteOfDay(videoStart) - timeparse.MinuteOfDay(windowStart)
	overrun := timeparse.MinuteOfDay(videoEnd) - timeparse.MinuteOfDay(windowEnd)

	detail := &model.TimingDetail{
		VideoStart:        clockWithSeconds(videoStart),
		VideoEnd:          clockWithSeconds(videoEnd),
		PeriodStart:       window.StartTime,
		PeriodEnd:         window.EndTime,
		StartDelayMinutes: delay,
		EndOverrunMinutes: overrun,
		DurationMinutes:   durationSeconds / 60,
	}

	period := window.Period
	label := window.DisplayTime
	if label == "" {
		label = fmt.Sprintf("%s - %s", window.StartTime, window.EndTime)
	}

	verdict := model.QualificationVerdict{
		MatchedPeriod:      &period,
		MatchedPeriodLabel: &label,
		Timing:             detail,
	}

	switch {
	case videoStartSec >= windowStartSec && videoEndSec <= windowEndSec && delay == 0:
		verdict.Status = model.StatusQualified
		verdict.IsQualified = true
		verdict.Message = fmt.Sprintf("✅ QUALIFIED! Video started exactly on time at %s and ended at %s within Period %d (%s)",
			clock(videoStart), clock(videoEnd), period, label)
		return verdict, true

	case delay > 0 && delay <= q.GraceMinutes && videoEndSec <= windowEndSec:
		verdict.Status = model.StatusQualifiedLateStart
		verdict.IsQualified = true
		verdict.Message = fmt.Sprintf("✅ QUALIFIED (Late Start)! Video started %d minutes late at %s (Period starts at %s). Ended at %s within Period %d.",
			delay, clock(videoStart), window.StartTime, clock(videoEnd), period)
		return verdict, true

	case delay > q.GraceMinutes:
		verdict.Status = model.StatusNotQualifiedLate
		verdict.Message = fmt.Sprintf("❌ NOT QUALIFIED! Video started %d minutes late at %s (Period starts at %s). Maximum allowed delay is %d minutes.",
			delay, clock(videoStart), window.StartTime, q.GraceMinutes)
		return verdict, true

	case videoStartSec < windowStartSec:
		verdict.Status = model.StatusNotQualifiedEarly
		verdict.Message = fmt.Sprintf("❌ NOT QUALIFIED! Video started %d minutes BEFORE period start at %s (Period starts at %s).",
			-delay, clock(videoStart), window.StartTime)
		return verdict, true

	case videoEndSec > windowEndSec:
		verdict.Status = model.StatusNotQualifiedOverrun
		verdict.Message = fmt.Sprintf("❌ NOT QUALIFIED! Video ended %d minutes AFTER period end at %s (Period ends at %s).",
			overrun, clock(videoEnd), window.EndTime)
		return verdict, true
	}

	return model.QualificationVerdict{}, false
}

func clock(t time.Time) string {
	return t.Format("03:04 PM")
}

func clockWithSeconds(t time.Time) string {
	return t.Format("03:04:05 PM")
}

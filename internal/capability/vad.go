package capability

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/service/common"
	"github.com/sirupsen/logrus"
)

const (
	// SilenceThresholdDB segments speech activity at a fixed energy
	// threshold: 35 dB below peak.
	SilenceThresholdDB = 35
	// MinGapSeconds is the shortest silence recorded as a speaking gap.
	MinGapSeconds = 0.4
)

// silenceDetector implements PauseDetector using ffmpeg's silencedetect
// filter.
type silenceDetector struct {
	cmdRunner common.CmdRunner
	log       *logrus.Logger

	initOnce sync.Once
	initErr  error
}

// NewSilenceDetector creates a PauseDetector backed by ffmpeg.
func NewSilenceDetector(cmdRunner common.CmdRunner, log *logrus.Logger) PauseDetector {
	return &silenceDetector{cmdRunner: cmdRunner, log: log}
}

// Available checks for the ffmpeg binary at most once per process.
func (d *silenceDetector) Available() bool {
	d.initOnce.Do(func() {
		d.initErr = d.cmdRunner.LookPath("ffmpeg")
		if d.initErr != nil {
			d.log.WithError(d.initErr).Warn("ffmpeg unavailable, pause detection disabled")
		}
	})
	return d.initErr == nil
}

// DetectGaps runs silencedetect over the file's audio track and returns
// silences of at least MinGapSeconds plus their summed duration.
func (d *silenceDetector) DetectGaps(ctx context.Context, path string) ([]model.SpeakingGap, float64, error) {
	if path == "" {
		return nil, 0, errors.New(errors.CodeInvalidArg, "media path is required")
	}
	if !d.Available() {
		return nil, 0, errors.Wrap(d.initErr, errors.CodeUnavailable, "ffmpeg is not installed")
	}

	filter := "silencedetect=noise=-" + strconv.Itoa(SilenceThresholdDB) + "dB:d=" +
		strconv.FormatFloat(MinGapSeconds, 'f', -1, 64)

	// silencedetect reports on stderr; the null muxer discards the media.
	out, err := d.cmdRunner.RunCombined(ctx, "ffmpeg",
		"-hide_banner", "-nostats",
		"-i", path,
		"-vn",
		"-af", filter,
		"-f", "null", "-",
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeExternal, "ffmpeg silence detection failed")
	}

	gaps := parseSilenceReport(string(out))

	total := 0.0
	for _, gap := range gaps {
		total += gap.Duration
	}
	return gaps, round2(total), nil
}

// parseSilenceReport extracts silence_start/silence_end pairs from
// silencedetect's log lines.
func parseSilenceReport(report string) []model.SpeakingGap {
	var gaps []model.SpeakingGap
	var start float64
	haveStart := false

	for _, line := range strings.Split(report, "\n") {
		if idx := strings.Index(line, "silence_start:"); idx >= 0 {
			if v, err := parseLeadingFloat(line[idx+len("silence_start:"):]); err == nil {
				start = v
				haveStart = true
			}
			continue
		}
		if idx := strings.Index(line, "silence_end:"); idx >= 0 && haveStart {
			end, err := parseLeadingFloat(line[idx+len("silence_end:"):])
			if err != nil {
				continue
			}
			duration := end - start
			if duration >= MinGapSeconds {
				gaps = append(gaps, model.SpeakingGap{
					Start:    round2(start),
					End:      round2(end),
					Duration: round2(duration),
				})
			}
			haveStart = false
		}
	}
	return gaps
}

// parseLeadingFloat reads the first whitespace-delimited token as a float.
// silence_end lines continue with "| silence_duration: ...".
func parseLeadingFloat(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, errors.New(errors.CodeExternal, "empty silencedetect value")
	}
	return strconv.ParseFloat(fields[0], 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

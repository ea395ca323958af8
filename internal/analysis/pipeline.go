package analysis

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/metaview/metaview/internal/capability"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/probe"
	"github.com/sirupsen/logrus"
)

// Pipeline derives one EngagementReport per video. Every stage degrades to
// a documented default when its capability is missing or fails; Analyze
// always returns a fully-populated report and never an error.
type Pipeline struct {
	registry         *capability.Registry
	prober           probe.Prober
	log              *logrus.Logger
	summarySentences int
}

// Input is what the pipeline needs about one recording. VideoPath may be
// empty or point at a deleted file; both are valid degraded cases.
type Input struct {
	UploadID        int64
	VideoPath       string
	DurationSeconds int
	IsQualified     bool
}

// NewPipeline creates a Pipeline with the default summary length.
func NewPipeline(registry *capability.Registry, prober probe.Prober, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		registry:         registry,
		prober:           prober,
		log:              log,
		summarySentences: DefaultSummarySentences,
	}
}

// NewPipelineWithSummarySentences creates a Pipeline with a custom summary
// length (for configuration and testing).
func NewPipelineWithSummarySentences(registry *capability.Registry, prober probe.Prober, log *logrus.Logger, sentences int) *Pipeline {
	p := NewPipeline(registry, prober, log)
	if sentences > 0 {
		p.summarySentences = sentences
	}
	return p
}

// Analyze runs all stages sequentially and fuses their signals into one
// report. The report gets a fresh unique identifier.
func (p *Pipeline) Analyze(ctx context.Context, in Input) *model.EngagementReport {
	fileAvailable := in.VideoPath != "" && fileExists(in.VideoPath)

	duration := in.DurationSeconds
	if duration <= 0 && fileAvailable {
		if facts, err := p.prober.Probe(ctx, in.VideoPath); err == nil {
			duration = facts.DurationSeconds
		} else {
			p.log.WithError(err).WithField("path", in.VideoPath).Warn("duration re-probe failed")
		}
	}

	transcript := ""
	var segments []model.TranscriptSegment
	if fileAvailable && p.registry.Transcriber.Available() {
		text, segs, err := p.registry.Transcriber.Transcribe(ctx, in.VideoPath)
		if err != nil {
			p.log.WithError(err).WithField("path", in.VideoPath).Warn("transcription failed")
		} else {
			transcript = text
			segments = segs
		}
	}

	summary := Summarize(transcript, p.summarySentences)
	fillerWords, fillerTotal := CountFillers(transcript)

	var gaps []model.SpeakingGap
	totalGapDuration := 0.0
	if fileAvailable && p.registry.Pauses.Available() {
		detected, total, err := p.registry.Pauses.DetectGaps(ctx, in.VideoPath)
		if err != nil {
			p.log.WithError(err).WithField("path", in.VideoPath).Warn("pause detection failed")
		} else {
			gaps = detected
			totalGapDuration = total
		}
	}

	speakerCount, speakerSegments := p.analyzeSpeakers(ctx, in.VideoPath, fileAvailable, duration)

	fused := FuseScores(FusionInput{
		Transcript:       transcript,
		FillerTotal:      fillerTotal,
		TotalGapDuration: totalGapDuration,
		DurationSeconds:  duration,
		SpeakerCount:     speakerCount,
		IsQualified:      in.IsQualified,
	})

	timeline := BuildTimeline(segments, duration, fused.EngagementScore)

	return &model.EngagementReport{
		ID:                      uuid.NewString(),
		UploadID:                in.UploadID,
		EngagementScore:         fused.EngagementScore,
		VideoEngagementScore:    fused.VideoEngagementScore,
		CombinedEngagementScore: fused.CombinedEngagementScore,
		ClarityScore:            fused.ClarityScore,
		ConfidenceScore:         fused.ConfidenceScore,
		OverallSentiment:        fused.OverallSentiment,
		EmotionalTone:           fused.EmotionalTone,
		TurnTakingFrequency:     fused.TurnTakingFrequency,
		Transcript:              transcript,
		Summary:                 summary,
		FillerWords:             fillerWords,
		FillerWordTotal:         fillerTotal,
		SpeakingGaps:            gaps,
		TotalGaps:               len(gaps),
		TotalGapDuration:        totalGapDuration,
		SpeakerCount:            speakerCount,
		SpeakerSegments:         speakerSegments,
		SpeakingRateWPM:         fused.SpeakingRateWPM,
		TotalWords:              fused.TotalWords,
		Timeline:                timeline,
		CreatedAt:               time.Now(),
	}
}

// analyzeSpeakers runs diarization when possible, falling back to a single
// synthetic faculty speaker spanning the known duration.
func (p *Pipeline) analyzeSpeakers(ctx context.Context, path string, fileAvailable bool, durationSeconds int) (int, []model.SpeakerSegment) {
	if !fileAvailable || !p.registry.Diarizer.Available() {
		return FallbackSpeaker(durationSeconds)
	}

	durations, err := p.registry.Diarizer.SpeakerDurations(ctx, path)
	if err != nil {
		p.log.WithError(err).WithField("path", path).Warn("speaker diarization failed")
		return FallbackSpeaker(durationSeconds)
	}

	count, segments, ok := LayoutSpeakers(durations)
	if !ok {
		return FallbackSpeaker(durationSeconds)
	}
	return count, segments
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

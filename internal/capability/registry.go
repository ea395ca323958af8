// Package capability wraps the optional analysis engines (speech-to-text,
// voice-activity segmentation, speaker diarization). Each provider probes
// its availability lazily, exactly once per process, and caches the outcome
// so a failed load is not re-paid on later requests. Runtime failures are
// reported per call and treated by the pipeline as "unavailable for this
// call," never as a fatal error.
package capability

import (
	"context"

	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/service/common"
	"github.com/sirupsen/logrus"
)

// Transcriber converts a media file to plain text plus timestamped segments.
type Transcriber interface {
	// Available reports whether the engine can be used; it never panics
	Available() bool
	Transcribe(ctx context.Context, path string) (string, []model.TranscriptSegment, error)
}

// PauseDetector finds silence gaps above the minimum duration threshold.
type PauseDetector interface {
	Available() bool
	// DetectGaps returns the recorded gaps and their summed duration
	DetectGaps(ctx context.Context, path string) ([]model.SpeakingGap, float64, error)
}

// Diarizer attributes cumulative talk time to anonymous speakers.
type Diarizer interface {
	Available() bool
	SpeakerDurations(ctx context.Context, path string) (map[string]float64, error)
}

// Registry holds the capability providers. It is constructed once at
// process start and passed into the pipeline by reference.
type Registry struct {
	Transcriber Transcriber
	Pauses      PauseDetector
	Diarizer    Diarizer
}

// NewRegistry builds the default provider set backed by external tools.
func NewRegistry(runner common.CmdRunner, whisperModel string, log *logrus.Logger) *Registry {
	return &Registry{
		Transcriber: NewWhisperTranscriber(runner, whisperModel, log),
		Pauses:      NewSilenceDetector(runner, log),
		Diarizer:    NewPyannoteDiarizer(runner, log),
	}
}

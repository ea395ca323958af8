package capability

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/service/common"
	"github.com/sirupsen/logrus"
)

// pyannoteDiarizer implements Diarizer by shelling out to a pyannote helper
// script. The helper needs a HuggingFace token to download the diarization
// model, so the token's absence disables the capability up front.
type pyannoteDiarizer struct {
	cmdRunner common.CmdRunner
	log       *logrus.Logger

	initOnce sync.Once
	initErr  error
}

// NewPyannoteDiarizer creates a Diarizer backed by pyannote.audio.
func NewPyannoteDiarizer(cmdRunner common.CmdRunner, log *logrus.Logger) Diarizer {
	return &pyannoteDiarizer{cmdRunner: cmdRunner, log: log}
}

// Available checks once per process for python3 and a HuggingFace token.
func (d *pyannoteDiarizer) Available() bool {
	d.initOnce.Do(func() {
		if os.Getenv("HF_TOKEN") == "" && os.Getenv("HUGGINGFACE_TOKEN") == "" {
			d.initErr = errors.New(errors.CodeUnavailable, "no HuggingFace token configured")
		} else {
			d.initErr = d.cmdRunner.LookPath("python3")
		}
		if d.initErr != nil {
			d.log.WithError(d.initErr).Warn("pyannote unavailable, speaker diarization disabled")
		}
	})
	return d.initErr == nil
}

// diarizeOutput matches the helper script's JSON: cumulative talk time in
// seconds per detected speaker.
type diarizeOutput struct {
	Speakers map[string]float64 `json:"speakers"`
}

// SpeakerDurations runs the diarization helper and returns per-speaker
// cumulative talk time.
func (d *pyannoteDiarizer) SpeakerDurations(ctx context.Context, path string) (map[string]float64, error) {
	if path == "" {
		return nil, errors.New(errors.CodeInvalidArg, "media path is required")
	}
	if !d.Available() {
		return nil, errors.Wrap(d.initErr, errors.CodeUnavailable, "diarization is not available")
	}

	out, err := d.cmdRunner.Run(ctx, "python3", "-m", "metaview_diarize", "--input", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "diarization helper failed")
	}

	var parsed diarizeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse diarization output")
	}

	return parsed.Speakers, nil
}

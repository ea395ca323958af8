package capability

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/service/common"
	"github.com/sirupsen/logrus"
)

// DefaultWhisperModel balances accuracy against CPU cost for hour-long
// lectures.
const DefaultWhisperModel = "medium"

// whisperTranscriber implements Transcriber using the Whisper CLI
type whisperTranscriber struct {
	cmdRunner common.CmdRunner
	model     string
	log       *logrus.Logger

	initOnce sync.Once
	initErr  error
}

// NewWhisperTranscriber creates a Transcriber backed by the whisper CLI.
// An empty model name selects the default.
func NewWhisperTranscriber(cmdRunner common.CmdRunner, model string, log *logrus.Logger) Transcriber {
	if model == "" {
		model = DefaultWhisperModel
	}
	return &whisperTranscriber{
		cmdRunner: cmdRunner,
		model:     model,
		log:       log,
	}
}

// Available checks for the whisper binary at most once per process.
func (t *whisperTranscriber) Available() bool {
	t.initOnce.Do(func() {
		t.initErr = t.cmdRunner.LookPath("whisper")
		if t.initErr != nil {
			t.log.WithError(t.initErr).Warn("whisper unavailable, transcription disabled")
		}
	})
	return t.initErr == nil
}

// whisperOutput matches the Whisper CLI's JSON output format
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs the Whisper CLI and parses its JSON output file.
func (t *whisperTranscriber) Transcribe(ctx context.Context, path string) (string, []model.TranscriptSegment, error) {
	if path == "" {
		return "", nil, errors.New(errors.CodeInvalidArg, "media path is required")
	}
	if !t.Available() {
		return "", nil, errors.Wrap(t.initErr, errors.CodeUnavailable, "whisper is not installed")
	}

	tempDir, err := os.MkdirTemp("", "metaview-whisper-*")
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CodeInternal, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	args := []string{
		path,
		"--model", t.model,
		"--output_format", "json",
		"--output_dir", tempDir,
		"--temperature", "0",
		"--fp16", "False",
	}

	if _, err := t.cmdRunner.Run(ctx, "whisper", args...); err != nil {
		return "", nil, errors.Wrap(err, errors.CodeExternal, "whisper transcription failed")
	}

	baseName := filepath.Base(path)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	jsonPath := filepath.Join(tempDir, baseName+".json")

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CodeInternal, "failed to read whisper output")
	}

	var result whisperOutput
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return "", nil, errors.Wrap(err, errors.CodeInternal, "failed to parse whisper output")
	}

	segments := make([]model.TranscriptSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, model.TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	return strings.TrimSpace(result.Text), segments, nil
}

package probe

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/service/common"
)

// Timeout is the hard deadline for one probe run. A probe that exceeds it
// is treated as failed, not retried.
const Timeout = 30 * time.Second

// Prober extracts container metadata from a media file.
type Prober interface {
	// Probe returns the file's VideoFacts, or an error when the file cannot
	// be inspected at all. Callers tolerate total absence of this data.
	Probe(ctx context.Context, path string) (*model.VideoFacts, error)
}

// ffprobeProber implements Prober using the ffprobe CLI
type ffprobeProber struct {
	cmdRunner common.CmdRunner
}

// NewProber creates a Prober backed by ffprobe
func NewProber() Prober {
	return &ffprobeProber{cmdRunner: common.NewCmdRunner()}
}

// NewProberWithCmdRunner creates a Prober with a custom CmdRunner (for testing)
func NewProberWithCmdRunner(cmdRunner common.CmdRunner) Prober {
	return &ffprobeProber{cmdRunner: cmdRunner}
}

// ffprobeOutput matches ffprobe's -print_format json layout
type ffprobeOutput struct {
	Format struct {
		Duration string            `json:"duration"`
		Size     string            `json:"size"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe runs ffprobe against the file under a 30 second deadline.
func (p *ffprobeProber) Probe(ctx context.Context, path string) (*model.VideoFacts, error) {
	if path == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "media path is required")
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	out, err := p.cmdRunner.Run(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.Wrap(err, apperrors.CodeTimeout, "ffprobe timed out")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "ffprobe failed")
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to parse ffprobe output")
	}

	return p.toFacts(parsed), nil
}

// toFacts maps the raw ffprobe document to VideoFacts, tolerating missing
// streams, tags, and numeric fields.
func (p *ffprobeProber) toFacts(parsed ffprobeOutput) *model.VideoFacts {
	facts := &model.VideoFacts{}

	if d, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
		facts.DurationSeconds = int(d)
	}
	if size, err := strconv.ParseInt(parsed.Format.Size, 10, 64); err == nil {
		facts.FileSizeBytes = size
	}

	// Device firmware disagrees on the tag name for the capture instant.
	if created, ok := parsed.Format.Tags["creation_time"]; ok && created != "" {
		facts.CreationTime = &created
	} else if date, ok := parsed.Format.Tags["date"]; ok && date != "" {
		facts.CreationTime = &date
	}

	for _, stream := range parsed.Streams {
		switch stream.CodecType {
		case "video":
			if facts.VideoCodec == nil {
				codec := stream.CodecName
				facts.VideoCodec = &codec
				if stream.Width > 0 && stream.Height > 0 {
					res := strconv.Itoa(stream.Width) + "x" + strconv.Itoa(stream.Height)
					facts.Resolution = &res
				}
			}
		case "audio":
			if facts.AudioCodec == nil {
				codec := stream.CodecName
				facts.AudioCodec = &codec
			}
		}
	}

	return facts
}

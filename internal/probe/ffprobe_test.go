package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCmdRunner for testing
type mockCmdRunner struct {
	mock.Mock
}

func (m *mockCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

func (m *mockCmdRunner) RunCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

func (m *mockCmdRunner) LookPath(name string) error {
	return m.Called(name).Error(0)
}

const sampleFFprobeJSON = `{
	"format": {
		"duration": "2400.480000",
		"size": "104857600",
		"tags": {"creation_time": "2024-03-18T02:35:00.000000Z"}
	},
	"streams": [
		{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
		{"codec_type": "audio", "codec_name": "aac"}
	]
}`

func TestFFprobeProber_Probe(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setup   func(*mockCmdRunner)
		wantErr bool
		check   func(*testing.T, *mockCmdRunner, error)
	}{
		{
			name: "full metadata",
			path: "/videos/lecture.mp4",
			setup: func(runner *mockCmdRunner) {
				runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
					Return([]byte(sampleFFprobeJSON), nil)
			},
		},
		{
			name: "ffprobe exits non-zero",
			path: "/videos/corrupt.mp4",
			setup: func(runner *mockCmdRunner) {
				runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
					Return(nil, assert.AnError)
			},
			wantErr: true,
		},
		{
			name:    "empty path",
			path:    "",
			setup:   func(runner *mockCmdRunner) {},
			wantErr: true,
		},
		{
			name: "unparsable output",
			path: "/videos/lecture.mp4",
			setup: func(runner *mockCmdRunner) {
				runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
					Return([]byte("not json"), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockCmdRunner)
			tt.setup(runner)

			prober := NewProberWithCmdRunner(runner)
			facts, err := prober.Probe(context.Background(), tt.path)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2400, facts.DurationSeconds)
			assert.Equal(t, int64(104857600), facts.FileSizeBytes)
			require.NotNil(t, facts.CreationTime)
			assert.Equal(t, "2024-03-18T02:35:00.000000Z", *facts.CreationTime)
			require.NotNil(t, facts.Resolution)
			assert.Equal(t, "1920x1080", *facts.Resolution)
			require.NotNil(t, facts.VideoCodec)
			assert.Equal(t, "h264", *facts.VideoCodec)
			require.NotNil(t, facts.AudioCodec)
			assert.Equal(t, "aac", *facts.AudioCodec)
		})
	}
}

func TestFFprobeProber_DateTagFallback(t *testing.T) {
	runner := new(mockCmdRunner)
	runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
		Return([]byte(`{"format":{"duration":"600.0","tags":{"date":"2024-03-18 08:05:00"}},"streams":[]}`), nil)

	prober := NewProberWithCmdRunner(runner)
	facts, err := prober.Probe(context.Background(), "/videos/lecture.mov")

	require.NoError(t, err)
	require.NotNil(t, facts.CreationTime)
	assert.Equal(t, "2024-03-18 08:05:00", *facts.CreationTime)
	assert.Equal(t, 600, facts.DurationSeconds)
	assert.Nil(t, facts.Resolution)
}

func TestFFprobeProber_MissingEverything(t *testing.T) {
	runner := new(mockCmdRunner)
	runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
		Return([]byte(`{"format":{},"streams":[]}`), nil)

	prober := NewProberWithCmdRunner(runner)
	facts, err := prober.Probe(context.Background(), "/videos/bare.webm")

	require.NoError(t, err)
	assert.Equal(t, 0, facts.DurationSeconds)
	assert.Nil(t, facts.CreationTime)
}

package analysis

import (
	"testing"

	"github.com/metaview/metaview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackSpeaker(t *testing.T) {
	count, segments := FallbackSpeaker(720)

	assert.Equal(t, 1, count)
	require.Len(t, segments, 1)
	assert.Equal(t, model.SpeakerSegment{
		Speaker:    PrimarySpeakerLabel,
		Start:      0,
		End:        720,
		Duration:   720,
		Percentage: 100.0,
	}, segments[0])
}

func TestLayoutSpeakers(t *testing.T) {
	durations := map[string]float64{
		"SPEAKER_00": 120.5,
		"SPEAKER_01": 479.5,
		"SPEAKER_02": 0,
	}

	count, segments, ok := LayoutSpeakers(durations)

	require.True(t, ok)
	assert.Equal(t, 3, count)
	require.Len(t, segments, 3)

	// Longest talk time comes first and is labeled as faculty.
	assert.Equal(t, PrimarySpeakerLabel, segments[0].Speaker)
	assert.Equal(t, 479.5, segments[0].Duration)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 479.5, segments[0].End)

	assert.Equal(t, "Speaker 2", segments[1].Speaker)
	assert.Equal(t, 479.5, segments[1].Start)
	assert.Equal(t, 600.0, segments[1].End)

	assert.Equal(t, "Speaker 3", segments[2].Speaker)
	assert.Equal(t, 0.0, segments[2].Duration)

	// Percentages of the diarized total.
	assert.Equal(t, 79.92, segments[0].Percentage)
	assert.Equal(t, 20.08, segments[1].Percentage)
	assert.Equal(t, 0.0, segments[2].Percentage)
}

func TestLayoutSpeakers_TieBreaksOnLabel(t *testing.T) {
	_, segments, ok := LayoutSpeakers(map[string]float64{
		"SPEAKER_01": 50,
		"SPEAKER_00": 50,
	})

	require.True(t, ok)
	require.Len(t, segments, 2)
	assert.Equal(t, PrimarySpeakerLabel, segments[0].Speaker)
	assert.Equal(t, 50.0, segments[0].Duration)
	// Equal shares are ordered by original label so runs are reproducible.
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 50.0, segments[1].Start)
}

func TestLayoutSpeakers_RejectsNonPositiveTotal(t *testing.T) {
	tests := []struct {
		name      string
		durations map[string]float64
	}{
		{name: "empty map", durations: map[string]float64{}},
		{name: "nil map", durations: nil},
		{name: "all zero", durations: map[string]float64{"SPEAKER_00": 0, "SPEAKER_01": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, segments, ok := LayoutSpeakers(tt.durations)

			assert.False(t, ok)
			assert.Zero(t, count)
			assert.Nil(t, segments)
		})
	}
}

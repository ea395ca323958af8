package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTime(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{
			name:       "12-hour morning",
			input:      "08:00 AM",
			wantHour:   8,
			wantMinute: 0,
		},
		{
			name:       "12-hour afternoon",
			input:      "02:45 PM",
			wantHour:   14,
			wantMinute: 45,
		},
		{
			name:       "24-hour",
			input:      "14:30",
			wantHour:   14,
			wantMinute: 30,
		},
		{
			name:       "surrounding whitespace",
			input:      "  09:15 AM ",
			wantHour:   9,
			wantMinute: 15,
		},
		{
			name:    "garbage",
			input:   "tomorrow-ish",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockTime(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMinute, got.Minute())
		})
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
		wantMin  int
		wantSec  int
		wantErr  bool
	}{
		{
			name:     "fractional-second UTC",
			input:    "2024-03-18T02:35:10.500000Z",
			wantHour: 2,
			wantMin:  35,
			wantSec:  10,
		},
		{
			name:     "whole-second UTC",
			input:    "2024-03-18T02:35:10Z",
			wantHour: 2,
			wantMin:  35,
			wantSec:  10,
		},
		{
			name:     "space-separated local",
			input:    "2024-03-18 08:05:00",
			wantHour: 8,
			wantMin:  5,
			wantSec:  0,
		},
		{
			name:     "bare 12-hour clock",
			input:    "08:05 AM",
			wantHour: 8,
			wantMin:  5,
			wantSec:  0,
		},
		{
			name:    "unrecognized format",
			input:   "18/03/2024 08:05",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Timestamp(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMin, got.Minute())
			assert.Equal(t, tt.wantSec, got.Second())
		})
	}
}

func TestToLocal(t *testing.T) {
	// 02:35 UTC + 5h30m = 08:05 local
	utc, err := Timestamp("2024-03-18T02:35:00Z")
	require.NoError(t, err)

	local := ToLocal(utc, DefaultUTCOffsetMinutes)
	assert.Equal(t, 8, local.Hour())
	assert.Equal(t, 5, local.Minute())
}

func TestMinuteOfDay_TruncatesSeconds(t *testing.T) {
	ts, err := Timestamp("2024-03-18 08:05:59")
	require.NoError(t, err)

	assert.Equal(t, 8*60+5, MinuteOfDay(ts))
	assert.Equal(t, 8*3600+5*60+59, SecondOfDay(ts))
}

package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		rest  string
	}{
		{"1h30m", 90 * time.Minute, ""},
		{" 250ms later", 250 * time.Millisecond, " later"},
		{"1.5s", 1500 * time.Millisecond, ""},
		{"-2m", -2 * time.Minute, ""},
		{"0", 0, ""},
		{"10us", 10 * time.Microsecond, ""},
		{"5s,", 5 * time.Second, ","},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, next, err := scanString(GoDuration(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.rest, next.Remaining())
		})
	}

	for _, input := range []string{"10", "h", "soon"} {
		_, next, err := scanString(GoDuration(), input)
		assert.ErrorIs(t, err, ErrScannerFailure, input)
		assert.Equal(t, 0, next.Offset())
	}
}

func TestISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		rest  string
	}{
		{"PT1H30M", 90 * time.Minute, ""},
		{"PT0.5S", 500 * time.Millisecond, ""},
		{"PT1,5M", 90 * time.Second, ""},
		{"PT36H", 36 * time.Hour, ""},
		{" PT10S done", 10 * time.Second, " done"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, next, err := scanString(ISO8601Duration(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.rest, next.Remaining())
		})
	}

	for _, input := range []string{"PT", "P1D", "1H", "pt1h"} {
		_, next, err := scanString(ISO8601Duration(), input)
		assert.ErrorIs(t, err, ErrScannerFailure, input)
		assert.Equal(t, 0, next.Offset())
	}

	for _, input := range []string{"PT3000000H", "PT9223372036.854775808S"} {
		_, next, err := scanString(ISO8601Duration(), input)
		assert.ErrorContains(t, err, "overflows", input)
		assert.Equal(t, 0, next.Offset())
	}
}

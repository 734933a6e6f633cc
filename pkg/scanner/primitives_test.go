package scanner

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanString runs s over input with the default policy.
func scanString[T any](s Scanner[T], input string) (T, Cursor, error) {
	return s.Scan(NewCursor(input, DefaultPolicy()))
}

func TestIntScanner(t *testing.T) {
	tests := []struct {
		input string
		want  int
		end   int
	}{
		{"42", 42, 2},
		{"  42 rest", 42, 4},
		{"-17", -17, 3},
		{"+5", 5, 2},
		{"007x", 7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, next, err := scanString(Int[int](), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.end, next.Offset())
		})
	}
}

func TestIntScannerFailures(t *testing.T) {
	_, next, err := scanString(Int[int](), "abc")
	assert.ErrorIs(t, err, ErrScannerFailure)
	assert.Equal(t, 0, next.Offset())

	_, _, err = scanString(Int[uint8](), "-1")
	assert.ErrorIs(t, err, ErrScannerFailure)

	_, _, err = scanString(Int[uint8](), "300")
	assert.ErrorIs(t, err, ErrScannerFailure)
	assert.ErrorIs(t, err, strconv.ErrRange, "the conversion error is kept as the cause")

	v, _, err := scanString(Int[int8](), "127")
	require.NoError(t, err)
	assert.Equal(t, int8(127), v)
	_, _, err = scanString(Int[int8](), "128")
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestFloatScanner(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		end   int
	}{
		{"25", 25, 2},
		{"54.32E-1", 5.432, 8},
		{"12345.", 12345, 6},
		{".5", 0.5, 2},
		{"-2.5e3 x", -2500, 6},
		{"1e", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, next, err := scanString(Float[float64](), tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-9)
			assert.Equal(t, tt.end, next.Offset())
		})
	}

	v32, _, err := scanString(Float[float32](), "25")
	require.NoError(t, err)
	assert.Equal(t, float32(25), v32)

	inf, _, err := scanString(Float[float64](), "-inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, -1))

	nan, _, err := scanString(Float[float64](), "NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan))

	_, _, err = scanString(Float[float64](), "infinite")
	assert.Error(t, err)
	_, _, err = scanString(Float[float64](), "x1")
	assert.ErrorIs(t, err, ErrScannerFailure)
}

func TestBoolScanner(t *testing.T) {
	v, _, err := scanString(Bool(), " true")
	require.NoError(t, err)
	assert.True(t, v)

	v, _, err = scanString(Bool(), "false!")
	require.NoError(t, err)
	assert.False(t, v)

	_, _, err = scanString(Bool(), "TRUE")
	assert.ErrorIs(t, err, ErrScannerFailure)

	v, _, err = Bool().Scan(NewCursor("TRUE", Policy{Compare: IgnoreCase}))
	require.NoError(t, err)
	assert.True(t, v)

	_, _, err = scanString(Bool(), "truex")
	assert.Error(t, err)
}

func TestCharAndStrScanners(t *testing.T) {
	r, next, err := scanString(Char(), "  ß水")
	require.NoError(t, err)
	assert.Equal(t, 'ß', r)
	assert.Equal(t, 4, next.Offset())

	_, _, err = scanString(Char(), "   ")
	assert.ErrorIs(t, err, ErrScannerFailure)

	s, _, err := scanString(Str(), "hello, world")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	s, _, err = Str().Scan(NewCursor("hello, world", Policy{Words: NonSpaceWords}))
	require.NoError(t, err)
	assert.Equal(t, "hello,", s)
}

func TestRadixScanners(t *testing.T) {
	h, next, err := scanString(Hex[int](), "ff")
	require.NoError(t, err)
	assert.Equal(t, 255, h)
	assert.Equal(t, 2, next.Offset())

	h, next, err = scanString(Hex[int](), "0x012x")
	require.NoError(t, err)
	assert.Equal(t, 0, h, "no prefix is recognised")
	assert.Equal(t, 1, next.Offset())

	o, _, err := scanString(Octal[uint16](), "0777")
	require.NoError(t, err)
	assert.Equal(t, uint16(0o777), o)

	b, next, err := scanString(Binary[uint8](), "1012")
	require.NoError(t, err)
	assert.Equal(t, uint8(5), b)
	assert.Equal(t, 3, next.Offset())

	_, _, err = scanString(Binary[uint8](), "111111111")
	assert.ErrorIs(t, err, strconv.ErrRange)
}

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	p, next, err := scanString(KeyValue(Word(), Float[float64]()), " pi : 3.14 rest")
	require.NoError(t, err)
	assert.Equal(t, Pair[string, float64]{Key: "pi", Value: 3.14}, p)
	assert.Equal(t, " rest", next.Remaining())

	_, next, err = scanString(KeyValue(Word(), Int[int]()), "pi = 3")
	assert.ErrorIs(t, err, ErrLiteralMismatch)
	assert.Equal(t, 0, next.Offset())
}

func TestSliceOf(t *testing.T) {
	tests := []struct {
		input string
		want  []int
		rest  string
	}{
		{"[1, 2, 3]", []int{1, 2, 3}, ""},
		{" [ 4 ] tail", []int{4}, " tail"},
		{"[]", []int{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, next, err := scanString(SliceOf(Int[int]()), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.rest, next.Remaining())
		})
	}

	nested, _, err := scanString(SliceOf(SliceOf(Int[int]())), "[[1], [2, 3], []]")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {2, 3}, {}}, nested)
}

func TestSliceOfErrors(t *testing.T) {
	for _, input := range []string{"[1, 2,]", "[1 2]", "1, 2", "[1, 2"} {
		t.Run(input, func(t *testing.T) {
			_, next, err := scanString(SliceOf(Int[int]()), input)
			var se *ScanError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "a list", se.Expected)
			assert.Equal(t, 0, next.Offset())
		})
	}
}

func TestSetOf(t *testing.T) {
	v, _, err := scanString(SetOf(Word()), "{a, b, a}")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, v)

	empty, _, err := scanString(SetOf(Int[int]()), "{}")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMapOf(t *testing.T) {
	v, _, err := scanString(MapOf(Word(), Int[int]()), "{x: 1, y: -2}")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1, "y": -2}, v)

	_, _, err = scanString(MapOf(Word(), Int[int]()), "{x: 1, x: 2}")
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "a map", se.Expected)
	assert.ErrorContains(t, err, "duplicate key x")
}

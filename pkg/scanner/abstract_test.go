package scanner

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbstractScanners(t *testing.T) {
	tests := []struct {
		name    string
		scanner Scanner[string]
		input   string
		want    string
		end     int
	}{
		{"Word", Word(), "  hello_world! ", "hello_world", 13},
		{"Word with marks", Word(), "caf\u00e9 au lait", "caf\u00e9", 5},
		{"NonSpace", NonSpace(), "a,b c", "a,b", 3},
		{"Number", Number(), "0123x", "0123", 4},
		{"Number Arabic-Indic", Number(), "\u0661\u0662\u0663 x", "\u0661\u0662\u0663", 6},
		{"Ident", Ident(), " _x1 y", "_x1", 4},
		{"Ident unicode", Ident(), "größe=1", "größe", len("größe")},
		{"Line LF", Line(), "first\nsecond", "first", 6},
		{"Line CRLF", Line(), "first\r\nsecond", "first", 7},
		{"Line CR", Line(), "a\rb", "a", 2},
		{"Line unterminated", Line(), "  last one", "last one", 10},
		{"Everything", Everything(), "  rest of it ", "rest of it ", 13},
		{"Everything empty", Everything(), "   ", "", 3},
		{"Space", Space(), " \t\nx", " \t\n", 3},
		{"HorizontalSpace", HorizontalSpace(), " \t\nx", " \t", 2},
		{"LineBreak CRLF", LineBreak(), "\r\nx", "\r\n", 2},
		{"LineBreak LF", LineBreak(), "\nx", "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, next, err := scanString(tt.scanner, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.end, next.Offset())
		})
	}
}

func TestAbstractScannerFailures(t *testing.T) {
	tests := []struct {
		name    string
		scanner Scanner[string]
		input   string
		offset  int
	}{
		{"Word at punctuation", Word(), "  !x", 2},
		{"Number at letter", Number(), "x1", 0},
		{"Ident at digit", Ident(), "1x", 0},
		{"Line at end", Line(), "  ", 2},
		{"Space at text", Space(), "x ", 0},
		{"HorizontalSpace at newline", HorizontalSpace(), "\n", 0},
		{"LineBreak keeps leading space", LineBreak(), " \n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, next, err := scanString(tt.scanner, tt.input)
			var se *ScanError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, ScannerFailure, se.Kind)
			assert.Equal(t, tt.offset, se.Offset)
			assert.Equal(t, 0, next.Offset(), "a failed scan returns the original cursor")
		})
	}
}

func TestAsConversion(t *testing.T) {
	n, next, err := scanString(WordAs(strconv.Atoi), " 42 rest")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, 3, next.Offset())

	_, _, err = scanString(WordAs(strconv.Atoi), "  abc")
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Offset, "conversion errors point at the start of the slice")
	assert.Equal(t, "a convertible value", se.Expected)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	width, next, err := scanString(As(Space(), func(s string) (int, error) { return len(s), nil }), "  x")
	require.NoError(t, err)
	assert.Equal(t, 2, width, "As keeps the whitespace handling of the slicing scanner")
	assert.Equal(t, 2, next.Offset())

	upper, _, err := scanString(LineAs(func(s string) (string, error) { return s + "!", nil }), "hi there\nnext")
	require.NoError(t, err)
	assert.Equal(t, "hi there!", upper)

	total, _, err := scanString(NumberAs(strconv.Atoi), "0042")
	require.NoError(t, err)
	assert.Equal(t, 42, total)

	length, _, err := scanString(EverythingAs(func(s string) (int, error) { return len(s), nil }), " abc")
	require.NoError(t, err)
	assert.Equal(t, 3, length)
}

func TestSpaceScannerUnderExactSpace(t *testing.T) {
	c := NewCursor("  x", Policy{Space: ExactSpace})
	_, _, err := Word().Scan(c)
	assert.ErrorIs(t, err, ErrScannerFailure, "nothing is skipped under exact space")

	ws, next, err := Space().Scan(c)
	require.NoError(t, err)
	assert.Equal(t, "  ", ws)

	word, _, err := Word().Scan(next)
	require.NoError(t, err)
	assert.Equal(t, "x", word)
}

package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAdvanceIsPure(t *testing.T) {
	input := "hello world"
	c := NewCursor(input, DefaultPolicy())

	first, err := c.AdvanceTo(6)
	require.NoError(t, err)
	second, err := c.AdvanceTo(6)
	require.NoError(t, err)

	assert.Equal(t, input[6:], first.Remaining())
	assert.Equal(t, first.Remaining(), second.Remaining())
	assert.Equal(t, 0, c.Offset(), "advancing must not move the original cursor")
	assert.Equal(t, input, c.Remaining())
}

func TestCursorAdvanceToRejectsBadOffsets(t *testing.T) {
	c := NewCursor("héllo", DefaultPolicy())
	at3, err := c.AdvanceTo(3)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cursor Cursor
		offset int
	}{
		{"Backwards", at3, 1},
		{"Past end", c, 100},
		{"Negative", c, -1},
		{"Inside a character", c, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cursor.AdvanceTo(tt.offset)
			assert.ErrorIs(t, err, ErrInvalidOffset)
		})
	}

	end, err := c.AdvanceTo(len("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "", end.Remaining())
}

func TestMatchLiteral(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		input   string
		literal string
		ok      bool
		end     int
	}{
		{"Leading space skipped", Policy{}, "  hello world", "hello", true, 7},
		{"Words across spaces", Policy{}, "hello   world", "hello world", true, 13},
		{"Partial word rejected", Policy{}, "helloworld", "hello", false, 0},
		{"Split literal rejected", Policy{}, "hello world", "helloworld", false, 0},
		{"Punctuation parts", Policy{}, "a , c", "a,c", true, 5},
		{"Case mismatch", Policy{}, "yes", "YES", false, 0},
		{"Ignore case", Policy{Compare: IgnoreCase}, "yes", "YES", true, 3},
		{"Normalized", Policy{Compare: Normalized}, "cafe\u0301!", "caf\u00e9", true, 6},
		{"Exact rejects decomposed", Policy{}, "cafe\u0301", "caf\u00e9", false, 0},
		{"Ignore case normalized", Policy{Compare: IgnoreCaseNormalized}, "CAFE\u0301", "caf\u00e9", true, 6},
		{"Exact space leading", Policy{Space: ExactSpace}, " hello", "hello", false, 0},
		{"Exact space verbatim", Policy{Space: ExactSpace}, "hello world", "hello world", true, 11},
		{"Exact space extra", Policy{Space: ExactSpace}, "hello  world", "hello world", false, 0},
		{"Fuzzy space run", Policy{Space: FuzzySpace}, "hello \t world", "hello world", true, 13},
		{"Fuzzy space missing", Policy{Space: FuzzySpace}, "hello,world", "hello ,world", false, 0},
		{"Non-line newline", Policy{Space: IgnoreNonLine}, "a \n b", "a\nb", true, 5},
		{"Non-line missing newline", Policy{Space: IgnoreNonLine}, "a b", "a\nb", false, 0},
		{"Non-line CRLF", Policy{Space: IgnoreNonLine}, "a\r\nb", "a\nb", true, 4},
		{"Horizontal skip", Policy{Space: HorSpace}, " \tx", "x", true, 3},
		{"Horizontal no newline", Policy{Space: HorSpace}, "\nx", "x", false, 0},
		{"Newline skip", Policy{Space: Newline}, "\n\nx", "x", true, 3},
		{"Newline no space", Policy{Space: Newline}, " x", "x", false, 0},
		{"Non-space words", Policy{Words: NonSpaceWords}, "a,c*e rest", "a,c*e", true, 5},
		{"Non-space words split", Policy{Words: NonSpaceWords}, "a , c", "a,c", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.input, tt.policy)
			next, err := c.MatchLiteral(tt.literal)
			assert.Equal(t, tt.ok, c.PeekLiteral(tt.literal))
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrLiteralMismatch)
				assert.Equal(t, 0, next.Offset())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.end, next.Offset())
		})
	}
}

func TestMatchLiteralErrorPosition(t *testing.T) {
	c := NewCursor("   help me", DefaultPolicy())
	_, err := c.MatchLiteral("hello")
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, LiteralMismatch, se.Kind)
	assert.Equal(t, 3, se.Offset, "offset is reported after the whitespace skip")
	assert.Equal(t, `"hello"`, se.Expected)
	assert.Equal(t, "help me", se.Found)
	assert.Contains(t, se.Error(), `expected "hello", found "help me" at offset 3`)
}

func TestSliceWord(t *testing.T) {
	word, next, err := NewCursor("  hello world", DefaultPolicy()).SliceWord()
	require.NoError(t, err)
	assert.Equal(t, "hello", word)
	assert.Equal(t, 7, next.Offset())

	word, _, err = NewCursor("hello, world", Policy{Words: NonSpaceWords}).SliceWord()
	require.NoError(t, err)
	assert.Equal(t, "hello,", word)

	_, _, err = NewCursor("   ", DefaultPolicy()).SliceWord()
	assert.ErrorIs(t, err, ErrScannerFailure)
}

func TestCustomWordSlice(t *testing.T) {
	digits := CustomWordSlice("digits", func(s string) int {
		return len(s) - len(strings.TrimLeft(s, "0123456789"))
	})
	assert.Equal(t, "digits", digits.String())

	c := NewCursor("12ab", Policy{Words: digits})
	word, next, err := c.SliceWord()
	require.NoError(t, err)
	assert.Equal(t, "12", word)
	assert.Equal(t, 2, next.Offset())

	oneByte := CustomWordSlice("one-byte", func(s string) int { return 1 })
	assert.Equal(t, 0, oneByte.Slice("é"), "a slice never ends inside a character")
	assert.Equal(t, 1, oneByte.Slice("aé"))
	assert.Equal(t, 0, oneByte.Slice(""))

	c = NewCursor("é", Policy{Words: oneByte})
	_, next, err = c.SliceWord()
	assert.ErrorIs(t, err, ErrScannerFailure)
	assert.Equal(t, 0, next.Offset())

	next, err = c.MatchLiteral("é")
	assert.ErrorIs(t, err, ErrLiteralMismatch)
	assert.Equal(t, 0, next.Offset())
}

func TestAtEnd(t *testing.T) {
	c, err := NewCursor("abc  \n", DefaultPolicy()).AdvanceTo(3)
	require.NoError(t, err)
	end, err := c.AtEnd()
	require.NoError(t, err)
	assert.Equal(t, 6, end.Offset())

	c, err = NewCursor("abc  ", Policy{Space: ExactSpace}).AdvanceTo(3)
	require.NoError(t, err)
	_, err = c.AtEnd()
	assert.ErrorIs(t, err, ErrExpectedEnd)
}

func TestSnippetCutsAtRuneBoundary(t *testing.T) {
	s := strings.Repeat("a", 15) + "水水"
	got := snippet(s)
	assert.Equal(t, strings.Repeat("a", 15), got)
}

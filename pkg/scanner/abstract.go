package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Abstract scanners slice text by some strategy and return the slice. Use
// As, or the *As shorthands, to convert the slice into another type.

// Word scans a run of word characters: letters, digits, marks and
// connector punctuation.
func Word() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		return scanSpan(c, isWordRune, "a word")
	})
}

// NonSpace scans a run of non-whitespace characters.
func NonSpace() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		return scanSpan(c, func(r rune) bool { return !unicode.IsSpace(r) }, "non-space text")
	})
}

// Number scans a run of decimal digits. The digits need not be ASCII.
func Number() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		return scanSpan(c, unicode.IsDigit, "a number")
	})
}

// Ident scans an identifier: a letter or underscore followed by letters,
// digits, marks or connector punctuation.
func Ident() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		cur := c.SkipSpace()
		rem := cur.Remaining()
		r, size := utf8.DecodeRuneInString(rem)
		if size == 0 || !(unicode.IsLetter(r) || r == '_') {
			return "", c, failure(cur, "an identifier", nil)
		}
		n := size + spanFunc(rem[size:], isWordRune)
		return rem[:n], cur.advance(n), nil
	})
}

// Line scans the rest of the current line. The line terminator (\n, \r\n or
// \r) is consumed but not included. Line fails at the end of input.
func Line() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		cur := c.SkipSpace()
		rem := cur.Remaining()
		if rem == "" {
			return "", c, failure(cur, "a line", nil)
		}
		i := strings.IndexAny(rem, "\r\n")
		if i < 0 {
			return rem, cur.advance(len(rem)), nil
		}
		term := 1
		if strings.HasPrefix(rem[i:], "\r\n") {
			term = 2
		}
		return rem[:i], cur.advance(i + term), nil
	})
}

// Everything scans all remaining input after the leading whitespace skip.
// It succeeds on empty input.
func Everything() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		cur := c.SkipSpace()
		rem := cur.Remaining()
		return rem, cur.advance(len(rem)), nil
	})
}

type spaceScanner struct {
	isSpace  func(rune) bool
	expected string
}

func (s spaceScanner) Scan(c Cursor) (string, Cursor, error) {
	n := spanFunc(c.Remaining(), s.isSpace)
	if n == 0 {
		return "", c, failure(c, s.expected, nil)
	}
	return c.Remaining()[:n], c.advance(n), nil
}

func (spaceScanner) keepsLeadingSpace() bool { return true }

// Space scans a run of whitespace. Unlike other scanners it does not skip
// leading whitespace first.
func Space() Scanner[string] {
	return spaceScanner{isSpace: unicode.IsSpace, expected: "whitespace"}
}

// HorizontalSpace scans a run of spaces and tabs.
func HorizontalSpace() Scanner[string] {
	return spaceScanner{isSpace: isHorizontalSpace, expected: "horizontal space"}
}

type lineBreakScanner struct{}

func (lineBreakScanner) Scan(c Cursor) (string, Cursor, error) {
	rem := c.Remaining()
	switch {
	case strings.HasPrefix(rem, "\r\n"):
		return rem[:2], c.advance(2), nil
	case strings.HasPrefix(rem, "\n"), strings.HasPrefix(rem, "\r"):
		return rem[:1], c.advance(1), nil
	}
	return "", c, failure(c, "a line break", nil)
}

func (lineBreakScanner) keepsLeadingSpace() bool { return true }

// LineBreak scans exactly one line terminator.
func LineBreak() Scanner[string] {
	return lineBreakScanner{}
}

// WordAs scans a word and converts it.
func WordAs[T any](convert func(string) (T, error)) Scanner[T] {
	return As(Word(), convert)
}

// LineAs scans the rest of the line and converts it.
func LineAs[T any](convert func(string) (T, error)) Scanner[T] {
	return As(Line(), convert)
}

// NumberAs scans a run of digits and converts it.
func NumberAs[T any](convert func(string) (T, error)) Scanner[T] {
	return As(Number(), convert)
}

// EverythingAs scans all remaining input and converts it.
func EverythingAs[T any](convert func(string) (T, error)) Scanner[T] {
	return As(Everything(), convert)
}

package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cursor is a read position into an input string together with the policy
// used to match against it. Cursors are values: every operation returns a new
// cursor and leaves the receiver untouched, so a failed attempt can simply be
// abandoned.
type Cursor struct {
	input  string
	offset int
	policy Policy
}

// NewCursor returns a cursor at the start of input.
func NewCursor(input string, policy Policy) Cursor {
	return Cursor{input: input, policy: policy}
}

func (c Cursor) Input() string  { return c.input }
func (c Cursor) Offset() int    { return c.offset }
func (c Cursor) Policy() Policy { return c.policy }

// Len returns the number of unconsumed bytes.
func (c Cursor) Len() int { return len(c.input) - c.offset }

// Remaining returns the unconsumed input without skipping anything.
func (c Cursor) Remaining() string { return c.input[c.offset:] }

// AdvanceTo moves the cursor to an absolute offset. The offset may not move
// backwards, pass the end of input, or split a character.
func (c Cursor) AdvanceTo(offset int) (Cursor, error) {
	if offset < c.offset || offset > len(c.input) {
		return c, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidOffset, offset, c.offset, len(c.input))
	}
	if offset < len(c.input) && !utf8.RuneStart(c.input[offset]) {
		return c, fmt.Errorf("%w: %d is inside a character", ErrInvalidOffset, offset)
	}
	c.offset = offset
	return c, nil
}

// advance moves forward by n bytes. Callers guarantee validity.
func (c Cursor) advance(n int) Cursor {
	c.offset += n
	return c
}

// bounded returns a cursor that sees input only up to end.
func (c Cursor) bounded(end int) Cursor {
	c.input = c.input[:end]
	return c
}

// rebase moves c to the offset reached by an inner cursor over the same text.
func (c Cursor) rebase(inner Cursor) Cursor {
	c.offset = inner.offset
	return c
}

// SkipSpace skips whitespace the policy allows to be skipped.
func (c Cursor) SkipSpace() Cursor {
	return c.advance(spanFunc(c.Remaining(), c.policy.Space.Skippable))
}

// MatchLiteral matches text at the cursor. The literal is split into words
// and whitespace runs; each word must match a whole input word under the
// comparison policy, and whitespace is handled by the space policy.
func (c Cursor) MatchLiteral(text string) (Cursor, error) {
	cur := c
	rest := text
	for rest != "" {
		if n := spanFunc(rest, unicode.IsSpace); n > 0 {
			next, ok := cur.matchSpaceRun(rest[:n])
			if !ok {
				return c, newScanError(LiteralMismatch, cur, fmt.Sprintf("%q", text), nil)
			}
			cur = next
			rest = rest[n:]
			continue
		}

		n := c.policy.Words.Slice(rest)
		if n == 0 {
			// A slicer that cannot split the literal falls back to one rune.
			_, n = utf8.DecodeRuneInString(rest)
		}
		part := rest[:n]
		rest = rest[n:]

		cur = cur.SkipSpace()
		remaining := cur.Remaining()
		m := c.policy.Words.Slice(remaining)
		if m == 0 || !c.policy.Compare.Equal(remaining[:m], part) {
			return c, newScanError(LiteralMismatch, cur, fmt.Sprintf("%q", text), nil)
		}
		cur = cur.advance(m)
	}
	return cur, nil
}

// PeekLiteral reports whether MatchLiteral would succeed.
func (c Cursor) PeekLiteral(text string) bool {
	_, err := c.MatchLiteral(text)
	return err == nil
}

// matchSpaceRun matches a run of whitespace taken from a literal.
func (c Cursor) matchSpaceRun(ws string) (Cursor, bool) {
	switch c.policy.Space {
	case IgnoreSpace:
		return c, true
	case FuzzySpace:
		n := spanFunc(c.Remaining(), unicode.IsSpace)
		return c.advance(n), n > 0
	}
	for _, r := range ws {
		if c.policy.Space.Skippable(r) {
			continue
		}
		c = c.SkipSpace()
		rem := c.Remaining()
		switch {
		case r == '\n' && strings.HasPrefix(rem, "\r\n"):
			c = c.advance(2)
		case strings.HasPrefix(rem, string(r)):
			c = c.advance(utf8.RuneLen(r))
		default:
			return c, false
		}
	}
	return c, true
}

// SliceWord skips whitespace and slices one word with the policy's
// WordSlice.
func (c Cursor) SliceWord() (string, Cursor, error) {
	cur := c.SkipSpace()
	n := c.policy.Words.Slice(cur.Remaining())
	if n == 0 {
		return "", c, failure(cur, "a word", nil)
	}
	return cur.Remaining()[:n], cur.advance(n), nil
}

// AtEnd succeeds if nothing but skippable whitespace remains.
func (c Cursor) AtEnd() (Cursor, error) {
	cur := c.SkipSpace()
	if cur.Len() > 0 {
		return c, newScanError(ExpectedEnd, cur, "end of input", nil)
	}
	return cur, nil
}

// runeFloor returns the largest rune boundary in s at or below n.
func runeFloor(s string, n int) int {
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}

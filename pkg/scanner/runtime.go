package scanner

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Runtime adapters build scanners from values known only at run time: a
// width, a compiled pattern, or any other prefix matcher.

type widthScanner[T any] struct {
	width int
	inner Scanner[T]
	scan  func(w widthScanner[T], start Cursor) (T, Cursor, error)
}

func (w widthScanner[T]) Scan(c Cursor) (T, Cursor, error) {
	v, next, err := w.scan(w, prepare(w.inner, c))
	if err != nil {
		return v, c, err
	}
	return v, next, nil
}

func (w widthScanner[T]) keepsLeadingSpace() bool { return keepsLeadingSpace(w.inner) }

// MaxWidth lets inner see at most width bytes of input, counted from the
// first non-skipped character. The bound is moved back to a character
// boundary if needed.
func MaxWidth[T any](width int, inner Scanner[T]) Scanner[T] {
	return widthScanner[T]{width: width, inner: inner, scan: scanMaxWidth[T]}
}

func scanMaxWidth[T any](w widthScanner[T], start Cursor) (T, Cursor, error) {
	end := start.offset + runeFloor(start.Remaining(), w.width)
	v, next, err := w.inner.Scan(start.bounded(end))
	if err != nil {
		var zero T
		return zero, start, err
	}
	return v, start.rebase(next), nil
}

// ExactWidth gives inner exactly width bytes of input, which it must
// consume completely.
func ExactWidth[T any](width int, inner Scanner[T]) Scanner[T] {
	return widthScanner[T]{width: width, inner: inner, scan: scanExactWidth[T]}
}

func scanExactWidth[T any](w widthScanner[T], start Cursor) (T, Cursor, error) {
	var zero T
	expected := fmt.Sprintf("exactly %d bytes", w.width)
	if start.Len() < w.width {
		return zero, start, failure(start, expected, errors.New("input not long enough"))
	}
	end := start.offset + w.width
	if end < len(start.input) && !utf8.RuneStart(start.input[end]) {
		return zero, start, failure(start, expected, errors.New("width splits a character"))
	}
	v, next, err := w.inner.Scan(start.bounded(end))
	if err != nil {
		return zero, start, err
	}
	if next.offset != end {
		return zero, start, failure(start, expected, errors.New("value did not consume enough characters"))
	}
	return v, start.rebase(next), nil
}

// MinWidth requires inner to consume at least width bytes.
func MinWidth[T any](width int, inner Scanner[T]) Scanner[T] {
	return widthScanner[T]{width: width, inner: inner, scan: scanMinWidth[T]}
}

func scanMinWidth[T any](w widthScanner[T], start Cursor) (T, Cursor, error) {
	var zero T
	v, next, err := w.inner.Scan(start)
	if err != nil {
		return zero, start, err
	}
	if next.offset-start.offset < w.width {
		return zero, start, failure(start, fmt.Sprintf("at least %d bytes", w.width),
			errors.New("value did not consume enough characters"))
	}
	return v, next, nil
}

// PrefixMatcher finds a match at the start of s, returning its length.
type PrefixMatcher interface {
	MatchPrefix(s string) (n int, ok bool)
}

// PrefixMatcherFunc adapts a function to PrefixMatcher.
type PrefixMatcherFunc func(s string) (int, bool)

func (f PrefixMatcherFunc) MatchPrefix(s string) (int, bool) { return f(s) }

// Matching scans the prefix accepted by m. An empty match fails.
func Matching(m PrefixMatcher) Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		cur := c.SkipSpace()
		rem := cur.Remaining()
		n, ok := m.MatchPrefix(rem)
		if !ok || n <= 0 || n > len(rem) || !utf8.ValidString(rem[:n]) {
			return "", c, failure(cur, "text accepted by matcher", nil)
		}
		return rem[:n], cur.advance(n), nil
	})
}

// regexScanner slices input with a regular expression anchored at the
// cursor and hands the selected slice to then.
type regexScanner[T any] struct {
	pattern string
	re      *regexp.Regexp
	group   int
	then    Scanner[T]
}

func newRegexScanner[T any](re *regexp.Regexp, then Scanner[T]) regexScanner[T] {
	anchored := regexp.MustCompile(`^(?:` + re.String() + `)`)
	anchored.Longest()
	group := 0
	if i := anchored.SubexpIndex("scan"); i > 0 {
		group = i
	} else if anchored.NumSubexp() > 0 {
		group = 1
	}
	return regexScanner[T]{pattern: re.String(), re: anchored, group: group, then: then}
}

// MatchPrefix reports the length of the longest match at the start of s.
func (r regexScanner[T]) MatchPrefix(s string) (int, bool) {
	loc := r.re.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}

func (r regexScanner[T]) Scan(c Cursor) (T, Cursor, error) {
	var zero T
	cur := c.SkipSpace()
	loc := r.re.FindStringSubmatchIndex(cur.Remaining())
	if loc == nil || loc[2*r.group] < 0 {
		return zero, c, failure(cur, fmt.Sprintf("text matching /%s/", r.pattern), errors.New("no match for regular expression"))
	}
	from := cur.offset + loc[2*r.group]
	to := cur.offset + loc[2*r.group+1]
	slice := Cursor{input: cur.input[:to], offset: from, policy: cur.policy}
	v, _, err := r.then.Scan(slice)
	if err != nil {
		return zero, c, err
	}
	return v, cur.advance(loc[1]), nil
}

// Regexp scans the longest match of re at the cursor. If re has a group
// named "scan" its text is returned, else the first group's, else the whole
// match. The whole match is consumed either way.
func Regexp(re *regexp.Regexp) Scanner[string] {
	return newRegexScanner(re, wholeSlice())
}

// wholeSlice returns everything the cursor can see, whitespace included.
func wholeSlice() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		return c.Remaining(), c.advance(c.Len()), nil
	})
}

// RegexpAs is like Regexp but scans the selected text with then.
func RegexpAs[T any](re *regexp.Regexp, then Scanner[T]) Scanner[T] {
	return newRegexScanner(re, then)
}

// Regex compiles pattern and returns a Regexp scanner.
func Regex(pattern string) (Scanner[string], error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern '%s': %w", pattern, err)
	}
	return Regexp(re), nil
}

// MustRegex is like Regex but panics if pattern does not compile.
func MustRegex(pattern string) Scanner[string] {
	s, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

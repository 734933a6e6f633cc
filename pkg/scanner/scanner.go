package scanner

import "regexp"

// Scanner produces a value of type T from the input at a cursor, returning
// the cursor positioned after the consumed text.
type Scanner[T any] interface {
	Scan(c Cursor) (T, Cursor, error)
}

// ScanFunc adapts a function to the Scanner interface.
type ScanFunc[T any] func(c Cursor) (T, Cursor, error)

func (f ScanFunc[T]) Scan(c Cursor) (T, Cursor, error) {
	return f(c)
}

// spaceKeeper is implemented by scanners that consume whitespace themselves
// and so must not have leading whitespace skipped for them.
type spaceKeeper interface {
	keepsLeadingSpace() bool
}

func keepsLeadingSpace(s any) bool {
	k, ok := s.(spaceKeeper)
	return ok && k.keepsLeadingSpace()
}

// prepare skips leading whitespace for s unless s handles it itself.
func prepare(s any, c Cursor) Cursor {
	if keepsLeadingSpace(s) {
		return c
	}
	return c.SkipSpace()
}

// Erase hides the value type of a scanner so it can be stored in a Term.
func Erase[T any](s Scanner[T]) Scanner[any] {
	if e, ok := any(s).(Scanner[any]); ok {
		return e
	}
	return erased[T]{s}
}

type erased[T any] struct{ inner Scanner[T] }

func (e erased[T]) Scan(c Cursor) (any, Cursor, error) {
	v, next, err := e.inner.Scan(c)
	if err != nil {
		return nil, c, err
	}
	return v, next, nil
}

func (e erased[T]) keepsLeadingSpace() bool { return keepsLeadingSpace(e.inner) }

// As slices text with one scanner and converts the result. A conversion
// error fails the scan at the start of the slice and is kept as the cause.
func As[S, T any](slice Scanner[S], convert func(S) (T, error)) Scanner[T] {
	return converted[S, T]{slice: slice, convert: convert}
}

type converted[S, T any] struct {
	slice   Scanner[S]
	convert func(S) (T, error)
}

func (a converted[S, T]) Scan(c Cursor) (T, Cursor, error) {
	var zero T
	start := prepare(a.slice, c)
	s, next, err := a.slice.Scan(start)
	if err != nil {
		return zero, c, err
	}
	v, err := a.convert(s)
	if err != nil {
		return zero, c, failure(start, "a convertible value", err)
	}
	return v, next, nil
}

func (a converted[S, T]) keepsLeadingSpace() bool { return keepsLeadingSpace(a.slice) }

// scanPattern skips whitespace and matches re at the cursor. re must be
// anchored with ^.
func scanPattern(c Cursor, re *regexp.Regexp, expected string) (string, Cursor, error) {
	cur := c.SkipSpace()
	loc := re.FindStringIndex(cur.Remaining())
	if loc == nil || loc[1] == 0 {
		return "", c, failure(cur, expected, nil)
	}
	return cur.Remaining()[:loc[1]], cur.advance(loc[1]), nil
}

// scanSpan skips whitespace and takes the longest run of runes satisfying f.
func scanSpan(c Cursor, f func(rune) bool, expected string) (string, Cursor, error) {
	cur := c.SkipSpace()
	n := spanFunc(cur.Remaining(), f)
	if n == 0 {
		return "", c, failure(cur, expected, nil)
	}
	return cur.Remaining()[:n], cur.advance(n), nil
}

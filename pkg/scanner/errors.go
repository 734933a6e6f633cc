package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrLiteralMismatch is returned when literal text does not match the input
	ErrLiteralMismatch = errors.New("literal mismatch")

	// ErrScannerFailure is returned when a value scanner rejects the input
	ErrScannerFailure = errors.New("scanner failure")

	// ErrRepetitionBelowMinimum is returned when a repetition matched too few times
	ErrRepetitionBelowMinimum = errors.New("repetition below minimum")

	// ErrExpectedEnd is returned when input remains where the end was required
	ErrExpectedEnd = errors.New("expected end of input")

	// ErrNoRuleMatched is returned when every rule of a rule set failed
	ErrNoRuleMatched = errors.New("no rule matched")

	// ErrInvalidRule is returned for malformed rules, e.g. a remainder that is not last
	ErrInvalidRule = errors.New("invalid rule")

	// ErrInvalidOffset is returned when a cursor is moved backwards, past the end,
	// or into the middle of a character
	ErrInvalidOffset = errors.New("invalid cursor offset")
)

// ErrorKind classifies a ScanError.
type ErrorKind int

const (
	LiteralMismatch ErrorKind = iota
	ScannerFailure
	RepetitionBelowMinimum
	ExpectedEnd
)

func (k ErrorKind) String() string {
	switch k {
	case LiteralMismatch:
		return "LiteralMismatch"
	case ScannerFailure:
		return "ScannerFailure"
	case RepetitionBelowMinimum:
		return "RepetitionBelowMinimum"
	case ExpectedEnd:
		return "ExpectedEnd"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case LiteralMismatch:
		return ErrLiteralMismatch
	case RepetitionBelowMinimum:
		return ErrRepetitionBelowMinimum
	case ExpectedEnd:
		return ErrExpectedEnd
	}
	return ErrScannerFailure
}

// ScanError describes why a single term failed: where, what was expected,
// and what was found instead. Err holds the underlying cause, if any, such as
// a numeric conversion error.
type ScanError struct {
	Kind     ErrorKind
	Offset   int
	Expected string
	Found    string
	Err      error
}

func (e *ScanError) Error() string {
	var b strings.Builder
	b.WriteString("expected ")
	b.WriteString(e.Expected)
	if e.Found == "" {
		b.WriteString(", found end of input")
	} else {
		fmt.Fprintf(&b, ", found %q", e.Found)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ScanError) Unwrap() error { return e.Err }

// Is matches the sentinel error for the error's kind.
func (e *ScanError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *ScanError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.Int("offset", e.Offset),
		slog.String("expected", e.Expected),
		slog.String("found", e.Found),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

const foundSnippetLen = 16

// snippet returns up to foundSnippetLen bytes of s, cut at a rune boundary.
func snippet(s string) string {
	if len(s) <= foundSnippetLen {
		return s
	}
	return s[:runeFloor(s, foundSnippetLen)]
}

func newScanError(kind ErrorKind, c Cursor, expected string, cause error) *ScanError {
	return &ScanError{
		Kind:     kind,
		Offset:   c.offset,
		Expected: expected,
		Found:    snippet(c.Remaining()),
		Err:      cause,
	}
}

// failure builds a ScannerFailure at the cursor.
func failure(c Cursor, expected string, cause error) *ScanError {
	return newScanError(ScannerFailure, c, expected, cause)
}

// asScanError turns any error returned by a scanner into a *ScanError,
// treating foreign errors as scanner failures at c.
func asScanError(err error, c Cursor, expected string) *ScanError {
	var se *ScanError
	if errors.As(err, &se) {
		return se
	}
	return failure(c, expected, err)
}

// RuleFailure records why one rule of a rule set did not match.
type RuleFailure struct {
	Rule int
	Name string
	Err  *ScanError
}

func (f RuleFailure) String() string {
	name := f.Name
	if name == "" {
		name = fmt.Sprintf("#%d", f.Rule)
	}
	return fmt.Sprintf("rule %s: %v", name, f.Err)
}

// NoMatchError is returned when no rule matched. It keeps one reason per
// rule, in rule order.
type NoMatchError struct {
	Reasons []RuleFailure
}

func (e *NoMatchError) Error() string {
	if len(e.Reasons) == 0 {
		return "no rule matched: no rules given"
	}
	if len(e.Reasons) == 1 {
		return "no rule matched: " + e.Reasons[0].String()
	}
	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = r.String()
	}
	return fmt.Sprintf("no rule matched (%d rules tried): %s", len(e.Reasons), strings.Join(parts, "; "))
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoRuleMatched
}

// Unwrap exposes each rule's failure to errors.Is and errors.As.
func (e *NoMatchError) Unwrap() []error {
	errs := make([]error, len(e.Reasons))
	for i, r := range e.Reasons {
		errs[i] = r.Err
	}
	return errs
}

// Furthest returns the failure that got furthest into the input. Ties go to
// the earlier rule.
func (e *NoMatchError) Furthest() (RuleFailure, bool) {
	if len(e.Reasons) == 0 {
		return RuleFailure{}, false
	}
	best := e.Reasons[0]
	for _, r := range e.Reasons[1:] {
		if r.Err.Offset > best.Err.Offset {
			best = r
		}
	}
	return best, true
}

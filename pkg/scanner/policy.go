package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Comparison controls how literal text is compared against the input.
type Comparison int

const (
	// Exact compares byte for byte.
	Exact Comparison = iota
	// IgnoreCase compares after Unicode case folding.
	IgnoreCase
	// Normalized compares by canonical equivalence (NFC).
	Normalized
	// IgnoreCaseNormalized combines case folding and normalization.
	IgnoreCaseNormalized
)

var comparisonNames = map[Comparison]string{
	Exact:                "exact",
	IgnoreCase:           "ignore-case",
	Normalized:           "normalized",
	IgnoreCaseNormalized: "ignore-case-normalized",
}

func (c Comparison) String() string {
	if name, ok := comparisonNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// ParseComparison maps a name such as "ignore-case" to a Comparison.
func ParseComparison(name string) (Comparison, error) {
	for c, n := range comparisonNames {
		if n == name {
			return c, nil
		}
	}
	return Exact, fmt.Errorf("unknown comparison '%s'", name)
}

// Equal reports whether a and b are equal under the comparison.
func (c Comparison) Equal(a, b string) bool {
	switch c {
	case IgnoreCase:
		// A Caser keeps state, so each comparison gets its own.
		fold := cases.Fold()
		return fold.String(a) == fold.String(b)
	case Normalized:
		return norm.NFC.String(a) == norm.NFC.String(b)
	case IgnoreCaseNormalized:
		fold := cases.Fold()
		return norm.NFC.String(fold.String(norm.NFD.String(a))) ==
			norm.NFC.String(fold.String(norm.NFD.String(b)))
	default:
		return a == b
	}
}

// SpaceSkip controls which whitespace may be skipped between literal parts
// and before values.
type SpaceSkip int

const (
	// IgnoreSpace skips any Unicode whitespace.
	IgnoreSpace SpaceSkip = iota
	// ExactSpace skips nothing; whitespace in literals must match verbatim.
	ExactSpace
	// FuzzySpace lets a whitespace run in a literal match any non-empty
	// whitespace run in the input.
	FuzzySpace
	// IgnoreNonLine skips whitespace other than line breaks.
	IgnoreNonLine
	// HorSpace skips horizontal space only.
	HorSpace
	// Newline skips line breaks only.
	Newline
)

var spaceSkipNames = map[SpaceSkip]string{
	IgnoreSpace:   "ignore",
	ExactSpace:    "exact",
	FuzzySpace:    "fuzzy",
	IgnoreNonLine: "ignore-non-line",
	HorSpace:      "horizontal",
	Newline:       "newline",
}

func (s SpaceSkip) String() string {
	if name, ok := spaceSkipNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SpaceSkip(%d)", int(s))
}

// ParseSpaceSkip maps a name such as "fuzzy" to a SpaceSkip.
func ParseSpaceSkip(name string) (SpaceSkip, error) {
	for s, n := range spaceSkipNames {
		if n == name {
			return s, nil
		}
	}
	return IgnoreSpace, fmt.Errorf("unknown space policy '%s'", name)
}

// Skippable reports whether r may be skipped implicitly.
func (s SpaceSkip) Skippable(r rune) bool {
	switch s {
	case IgnoreSpace:
		return unicode.IsSpace(r)
	case IgnoreNonLine:
		return unicode.IsSpace(r) && !isLineBreak(r)
	case HorSpace:
		return isHorizontalSpace(r)
	case Newline:
		return isLineBreak(r)
	default:
		return false
	}
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t' || unicode.Is(unicode.Zs, r)
}

// WordSlice splits the first word off a string. Slice returns the byte length
// of that word, or 0 if s does not start with one.
type WordSlice struct {
	name  string
	slice func(s string) int
}

var (
	// Wordish slices a run of word characters, or else a single non-space
	// rune.
	Wordish = WordSlice{name: "wordish", slice: sliceWordish}
	// NonSpaceWords slices a run of non-whitespace runes.
	NonSpaceWords = WordSlice{name: "non-space", slice: sliceNonSpace}
)

// CustomWordSlice builds a WordSlice from a slicing function.
func CustomWordSlice(name string, slice func(s string) int) WordSlice {
	return WordSlice{name: name, slice: slice}
}

func (w WordSlice) String() string {
	if w.slice == nil {
		return Wordish.name
	}
	return w.name
}

// Slice returns the byte length of the first word in s.
func (w WordSlice) Slice(s string) int {
	if w.slice == nil {
		return sliceWordish(s)
	}
	n := w.slice(s)
	if n < 0 || n > len(s) {
		return 0
	}
	return runeFloor(s, n)
}

// ParseWordSlice maps "wordish" or "non-space" to a WordSlice.
func ParseWordSlice(name string) (WordSlice, error) {
	switch name {
	case Wordish.name:
		return Wordish, nil
	case NonSpaceWords.name:
		return NonSpaceWords, nil
	}
	return Wordish, fmt.Errorf("unknown word slicing '%s'", name)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) ||
		unicode.Is(unicode.Pc, r)
}

func sliceWordish(s string) int {
	if n := spanFunc(s, isWordRune); n > 0 {
		return n
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsSpace(r) {
		return 0
	}
	return size
}

func sliceNonSpace(s string) int {
	return spanFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
}

// spanFunc returns the byte length of the longest prefix of s whose runes
// all satisfy f.
func spanFunc(s string, f func(rune) bool) int {
	if i := strings.IndexFunc(s, func(r rune) bool { return !f(r) }); i >= 0 {
		return i
	}
	return len(s)
}

// Policy bundles the three matching policies. The zero value is the default:
// exact comparison, any whitespace skipped, wordish slicing.
type Policy struct {
	Compare Comparison
	Space   SpaceSkip
	Words   WordSlice
}

// DefaultPolicy returns the zero Policy with the word slicer spelled out.
func DefaultPolicy() Policy {
	return Policy{Compare: Exact, Space: IgnoreSpace, Words: Wordish}
}

func (p Policy) String() string {
	return fmt.Sprintf("compare=%s space=%s words=%s", p.Compare, p.Space, p.Words)
}

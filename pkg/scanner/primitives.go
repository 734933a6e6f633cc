package scanner

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the set of integer types.
type Integer interface {
	Signed | Unsigned
}

// Floating is the set of floating point types.
type Floating interface {
	~float32 | ~float64
}

var (
	signedIntRegex   = regexp.MustCompile(`^[+-]?[0-9]+`)
	unsignedIntRegex = regexp.MustCompile(`^\+?[0-9]+`)
	floatRegex       = regexp.MustCompile(`^[+-]?(?:(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|(?i:inf(?:inity)?|nan)\b)`)
	hexDigitsRegex   = regexp.MustCompile(`^[0-9a-fA-F]+`)
	octalDigitsRegex = regexp.MustCompile(`^[0-7]+`)
	binDigitsRegex   = regexp.MustCompile(`^[01]+`)
)

func isSigned[T Integer]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func bitSize[T any]() int {
	return reflect.TypeFor[T]().Bits()
}

// parseInteger converts text in the given base into T, reporting overflow
// through strconv's errors.
func parseInteger[T Integer](text string, base int) (T, error) {
	if isSigned[T]() {
		v, err := strconv.ParseInt(text, base, bitSize[T]())
		return T(v), err
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), base, bitSize[T]())
	return T(v), err
}

// Int scans a decimal integer with an optional sign.
func Int[T Integer]() Scanner[T] {
	re, expected := signedIntRegex, "an integer"
	if !isSigned[T]() {
		re, expected = unsignedIntRegex, "an unsigned integer"
	}
	return radixScanner[T]{re: re, base: 10, expected: expected}
}

// Hex scans hexadecimal digits without a prefix.
func Hex[T Integer]() Scanner[T] {
	return radixScanner[T]{re: hexDigitsRegex, base: 16, expected: "a hexadecimal integer"}
}

// Octal scans octal digits without a prefix.
func Octal[T Integer]() Scanner[T] {
	return radixScanner[T]{re: octalDigitsRegex, base: 8, expected: "an octal integer"}
}

// Binary scans binary digits without a prefix.
func Binary[T Integer]() Scanner[T] {
	return radixScanner[T]{re: binDigitsRegex, base: 2, expected: "a binary integer"}
}

type radixScanner[T Integer] struct {
	re       *regexp.Regexp
	base     int
	expected string
}

func (s radixScanner[T]) Scan(c Cursor) (T, Cursor, error) {
	text, next, err := scanPattern(c, s.re, s.expected)
	if err != nil {
		return 0, c, err
	}
	v, err := parseInteger[T](text, s.base)
	if err != nil {
		return 0, c, failure(c.SkipSpace(), s.expected, err)
	}
	return v, next, nil
}

// Float scans a floating point number. Integer text such as "25" is
// accepted, as are inf, -inf and NaN.
func Float[T Floating]() Scanner[T] {
	return ScanFunc[T](func(c Cursor) (T, Cursor, error) {
		text, next, err := scanPattern(c, floatRegex, "a floating point number")
		if err != nil {
			return 0, c, err
		}
		v, err := strconv.ParseFloat(text, bitSize[T]())
		if err != nil {
			return 0, c, failure(c.SkipSpace(), "a floating point number", err)
		}
		return T(v), next, nil
	})
}

// Bool scans the word true or false, compared under the cursor's policy.
func Bool() Scanner[bool] {
	return ScanFunc[bool](func(c Cursor) (bool, Cursor, error) {
		word, next, err := c.SliceWord()
		if err != nil {
			return false, c, failure(c.SkipSpace(), "a boolean", nil)
		}
		switch cmp := c.policy.Compare; {
		case cmp.Equal(word, "true"):
			return true, next, nil
		case cmp.Equal(word, "false"):
			return false, next, nil
		}
		return false, c, failure(c.SkipSpace(), "a boolean", fmt.Errorf("'%s' is neither true nor false", word))
	})
}

// Char scans a single character.
func Char() Scanner[rune] {
	return ScanFunc[rune](func(c Cursor) (rune, Cursor, error) {
		cur := c.SkipSpace()
		r, size := utf8.DecodeRuneInString(cur.Remaining())
		if size == 0 {
			return 0, c, failure(cur, "a character", nil)
		}
		return r, cur.advance(size), nil
	})
}

// Str scans the next word as sliced by the cursor's WordSlice policy.
func Str() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		return c.SliceWord()
	})
}

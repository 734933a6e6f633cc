package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// QuotedString scans a string literal delimited by ", ', ` or «». Escape
// sequences are decoded; line breaks inside the quotes are rejected.
func QuotedString() Scanner[string] {
	return ScanFunc[string](func(c Cursor) (string, Cursor, error) {
		cur := c.SkipSpace()
		value, n, err := readQuoted(cur.Remaining())
		if err != nil {
			return "", c, failure(cur, "a quoted string", err)
		}
		return value, cur.advance(n), nil
	})
}

func isOpeningQuoteChar(r rune) bool {
	return r == '"' || r == '\'' || r == '`' || r == '«'
}

func getMatchingCloseQuote(openingQuote rune) rune {
	if openingQuote == '«' {
		return '»'
	}
	return openingQuote
}

// quoteReader walks a string literal rune by rune.
type quoteReader struct {
	input    string
	position int
}

func (q *quoteReader) hasMoreInput() bool {
	return q.position < len(q.input)
}

func (q *quoteReader) consume() rune {
	r, size := utf8.DecodeRuneInString(q.input[q.position:])
	q.position += size
	return r
}

func (q *quoteReader) peek() (rune, bool) {
	if !q.hasMoreInput() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(q.input[q.position:])
	return r, true
}

// readQuoted decodes the literal at the start of s, returning its value and
// the number of bytes it occupies including both quotes.
func readQuoted(s string) (string, int, error) {
	q := &quoteReader{input: s}
	r, ok := q.peek()
	if !ok {
		return "", 0, fmt.Errorf("no opening quote")
	}
	if !isOpeningQuoteChar(r) {
		return "", 0, fmt.Errorf("'%c' is not an opening quote", r)
	}
	quote := getMatchingCloseQuote(q.consume()) // Consume the opening quote

	var value strings.Builder
	for {
		if !q.hasMoreInput() {
			return "", 0, fmt.Errorf("unterminated string")
		}
		r := q.consume()
		switch {
		case r == quote:
			return value.String(), q.position, nil
		case r == '\\' && q.hasMoreInput():
			escaped, err := q.handleEscapeSequence()
			if err != nil {
				return "", 0, err
			}
			value.WriteString(escaped)
		case r == '\n' || r == '\r':
			return "", 0, fmt.Errorf("line break in string at offset %d", q.position-1)
		default:
			value.WriteRune(r)
		}
	}
}

func (q *quoteReader) handleEscapeSequence() (string, error) {
	r := q.consume() // Consume the escape character
	switch r {
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	case '0':
		return "\x00", nil
	case '\\', '/', '"', '\'', '`', '»':
		return string(r), nil
	case 'x':
		return q.readHexEscape(2)
	case 'u':
		if next, ok := q.peek(); ok && next == '{' {
			return q.readBracedEscape()
		}
		return q.readHexEscape(4)
	}
	return "", fmt.Errorf("unknown escape sequence '\\%c'", r)
}

// readHexEscape reads exactly n hex digits naming a code point.
func (q *quoteReader) readHexEscape(n int) (string, error) {
	end := q.position + n
	if end > len(q.input) {
		return "", fmt.Errorf("truncated escape sequence")
	}
	code := q.input[q.position:end]
	decoded, err := decodeUnicodeEscape(code)
	if err != nil {
		return "", fmt.Errorf("invalid escape sequence '%s': %w", code, err)
	}
	q.position = end
	return string(decoded), nil
}

// readBracedEscape reads \u{XXXX} with one to six hex digits.
func (q *quoteReader) readBracedEscape() (string, error) {
	q.consume() // Consume the '{'
	rest := q.input[q.position:]
	i := strings.IndexByte(rest, '}')
	if i < 1 || i > 6 {
		return "", fmt.Errorf("malformed \\u{...} escape")
	}
	decoded, err := decodeUnicodeEscape(rest[:i])
	if err != nil {
		return "", fmt.Errorf("invalid escape sequence '%s': %w", rest[:i], err)
	}
	q.position += i + 1
	return string(decoded), nil
}

// decodeUnicodeEscape decodes hex digits into a valid rune.
func decodeUnicodeEscape(code string) (rune, error) {
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("U+%X is not a valid character", v)
	}
	return r, nil
}

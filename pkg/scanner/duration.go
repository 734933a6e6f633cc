package scanner

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	goDurationRegex  = regexp.MustCompile(`^[-+]?(?:(?:(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:ns|us|µs|μs|ms|s|m|h))+|0)`)
	iso8601TimeRegex = regexp.MustCompile(`^P(?:T(?:([0-9]+(?:[.,][0-9]+)?)H)?(?:([0-9]+(?:[.,][0-9]+)?)M)?(?:([0-9]+(?:[.,][0-9]+)?)S)?)`)
)

// GoDuration scans a duration in Go syntax, such as "1h30m" or "250ms".
func GoDuration() Scanner[time.Duration] {
	return ScanFunc[time.Duration](func(c Cursor) (time.Duration, Cursor, error) {
		text, next, err := scanPattern(c, goDurationRegex, "a duration")
		if err != nil {
			return 0, c, err
		}
		d, err := time.ParseDuration(text)
		if err != nil {
			return 0, c, failure(c.SkipSpace(), "a duration", err)
		}
		return d, next, nil
	})
}

// ISO8601Duration scans an ISO 8601 time duration such as "PT1H30M" or
// "PT0.5S". Any component may be fractional. Date components (years,
// months, weeks, days) are rejected because their length varies.
func ISO8601Duration() Scanner[time.Duration] {
	return ScanFunc[time.Duration](func(c Cursor) (time.Duration, Cursor, error) {
		const expected = "an ISO 8601 duration"
		cur := c.SkipSpace()
		m := iso8601TimeRegex.FindStringSubmatch(cur.Remaining())
		if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
			return 0, c, failure(cur, expected, nil)
		}
		var seconds float64
		for i, unit := range []float64{3600, 60, 1} {
			part := m[i+1]
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.Replace(part, ",", ".", 1), 64)
			if err != nil {
				return 0, c, failure(cur, expected, err)
			}
			seconds += v * unit
		}
		total := seconds * float64(time.Second)
		if total >= math.MaxInt64 {
			return 0, c, failure(cur, expected, fmt.Errorf("duration %s overflows", m[0]))
		}
		return time.Duration(math.Round(total)), cur.advance(len(m[0])), nil
	})
}

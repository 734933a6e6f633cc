package main

import (
	"bufio"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/spicery/nutmeg-scanner/pkg/scanner"
)

// result is the JSON object printed for each scanned input.
type result struct {
	Line     int            `json:"line"`
	Input    string         `json:"input"`
	Rule     string         `json:"rule,omitempty"`
	Bindings map[string]any `json:"bindings,omitempty"`
	Rest     string         `json:"rest,omitempty"`
	Error    *errorReport   `json:"error,omitempty"`
}

type errorReport struct {
	Message  string         `json:"message"`
	Furthest string         `json:"furthest,omitempty"`
	Reasons  []reasonReport `json:"reasons,omitempty"`
}

type reasonReport struct {
	Rule     string `json:"rule"`
	Kind     string `json:"kind"`
	Offset   int    `json:"offset"`
	Expected string `json:"expected"`
	Found    string `json:"found"`
	Cause    string `json:"cause,omitempty"`
}

// maxLineSize bounds a single input line; use --whole for larger inputs.
const maxLineSize = 16 << 20

type scanStats struct {
	total  int
	failed int
}

// scanInput scans each line of r (or all of r when whole is set) and writes
// one JSON result per input to w.
func scanInput(engine *scanner.Engine[scanner.Bindings], r io.Reader, w io.Writer, whole bool) (scanStats, error) {
	var stats scanStats
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	emit := func(lineNo int, text string) error {
		stats.total++
		res := scanOne(engine, lineNo, text)
		if res.Error != nil {
			stats.failed++
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		return nil
	}

	if whole {
		data, err := io.ReadAll(r)
		if err != nil {
			return stats, fmt.Errorf("error reading input: %w", err)
		}
		return stats, emit(1, string(data))
	}

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		if lines.Text() == "" {
			continue
		}
		if err := emit(lineNo, lines.Text()); err != nil {
			return stats, err
		}
	}
	if err := lines.Err(); err != nil {
		return stats, fmt.Errorf("error reading input: %w", err)
	}
	return stats, nil
}

func scanOne(engine *scanner.Engine[scanner.Bindings], lineNo int, text string) result {
	res := result{Line: lineNo, Input: text}
	m, err := engine.Scan(text)
	if err != nil {
		res.Error = reportError(err)
		return res
	}
	res.Rule = m.Name
	res.Rest = m.Rest
	res.Bindings = make(map[string]any, len(m.Value))
	for name, v := range m.Value {
		res.Bindings[name] = jsonValue(v)
	}
	return res
}

func reportError(err error) *errorReport {
	report := &errorReport{Message: err.Error()}
	var nm *scanner.NoMatchError
	if !errors.As(err, &nm) {
		return report
	}
	if f, ok := nm.Furthest(); ok {
		report.Furthest = f.String()
	}
	for _, reason := range nm.Reasons {
		rr := reasonReport{
			Rule:     reason.Name,
			Kind:     reason.Err.Kind.String(),
			Offset:   reason.Err.Offset,
			Expected: reason.Err.Expected,
			Found:    reason.Err.Found,
		}
		if reason.Err.Err != nil {
			rr.Cause = reason.Err.Err.Error()
		}
		report.Reasons = append(report.Reasons, rr)
	}
	return report
}

var emptyStruct = reflect.TypeFor[struct{}]()

// jsonValue converts scanned values into something encoding/json can
// always encode: sets become sorted lists, map keys become strings, and
// non-finite floats and durations become strings.
func jsonValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Duration:
		return x.String()
	case float64:
		return jsonFloat(x)
	case float32:
		return jsonFloat(float64(x))
	case json.Marshaler, fmt.Stringer:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Elem() == emptyStruct {
			keys := make([]any, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				keys = append(keys, jsonValue(k.Interface()))
			}
			slices.SortFunc(keys, func(a, b any) int {
				return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
			})
			return keys
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonValue(iter.Value().Interface())
		}
		return out
	case reflect.Struct:
		key, value := rv.FieldByName("Key"), rv.FieldByName("Value")
		if key.IsValid() && value.IsValid() && rv.NumField() == 2 {
			return map[string]any{
				"key":   jsonValue(key.Interface()),
				"value": jsonValue(value.Interface()),
			}
		}
	}
	return v
}

func jsonFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

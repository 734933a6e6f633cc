package scanner

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Repetition matches a group of terms repeatedly, optionally separated by
// another group. Max of zero means no upper bound.
type Repetition struct {
	Terms     []Term
	Separator []Term
	Min       int
	Max       int
	Collect   Collector
}

// ZeroOrMore repeats terms any number of times, including none.
func ZeroOrMore(terms ...Term) Repetition {
	return Repetition{Terms: terms}
}

// OneOrMore repeats terms at least once.
func OneOrMore(terms ...Term) Repetition {
	return Repetition{Terms: terms, Min: 1}
}

// SeparatedBy returns a copy of r that expects sep between repeats.
func (r Repetition) SeparatedBy(sep ...Term) Repetition {
	r.Separator = sep
	return r
}

// AtMost returns a copy of r that stops after n repeats.
func (r Repetition) AtMost(n int) Repetition {
	r.Max = n
	return r
}

// Into returns a copy of r that collects bound values with c.
func (r Repetition) Into(c Collector) Repetition {
	r.Collect = c
	return r
}

func (r *Repetition) boundNames() []string {
	return append(boundNames(r.Terms), boundNames(r.Separator)...)
}

func (r *Repetition) validate() error {
	if len(r.Terms) == 0 {
		return fmt.Errorf("%w: repetition without terms", ErrInvalidRule)
	}
	if r.Min < 0 || r.Max < 0 || (r.Max > 0 && r.Max < r.Min) {
		return fmt.Errorf("%w: repetition bounds {%d,%d}", ErrInvalidRule, r.Min, r.Max)
	}
	for _, t := range r.Terms {
		if err := validateTerm(t, true); err != nil {
			return err
		}
	}
	for _, t := range r.Separator {
		if err := validateTerm(t, true); err != nil {
			return err
		}
	}
	return nil
}

// match runs the repetition from c and binds one container per bound name
// into out.
//
// Each repeat after the first matches the separator and then the terms. If
// either fails, the repetition stops just before the separator, so a
// trailing separator is never consumed. A repeat that consumes no input
// also stops the repetition and is not counted.
func (r *Repetition) match(c Cursor, out Bindings) (Cursor, *ScanError) {
	names := r.boundNames()
	values := make(map[string][]any, len(names))
	count := 0
	cur := c
	var last *ScanError
	for r.Max == 0 || count < r.Max {
		b := make(Bindings)
		attempt := cur
		if count > 0 && len(r.Separator) > 0 {
			next, err := matchTerms(attempt, r.Separator, b)
			if err != nil {
				last = err
				break
			}
			attempt = next
		}
		next, err := matchTerms(attempt, r.Terms, b)
		if err != nil {
			last = err
			break
		}
		if next.offset == cur.offset {
			last = failure(next, "repeated text to consume input", nil)
			break
		}
		for name, v := range b {
			values[name] = append(values[name], v)
		}
		count++
		cur = next
	}

	if count < r.Min {
		return c, &ScanError{
			Kind:     RepetitionBelowMinimum,
			Offset:   cur.offset,
			Expected: fmt.Sprintf("at least %d repetitions, matched %d", r.Min, count),
			Found:    snippet(cur.Remaining()),
			Err:      last,
		}
	}

	collect := r.Collect
	if collect == nil {
		collect = collectAny
	}
	for _, name := range names {
		container, err := collect(values[name])
		if err != nil {
			return c, failure(cur, "a collection for "+name, err)
		}
		out[name] = container
	}
	return cur, nil
}

// Collector converts the values bound to one name across repeats into a
// container.
type Collector func(values []any) (any, error)

func collectAny(values []any) (any, error) {
	return append([]any{}, values...), nil
}

func elementAs[T any](values []any, i int) (T, error) {
	t, ok := values[i].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("element %d is %T, not %T", i, values[i], zero)
	}
	return t, nil
}

// hashable reports whether v can be used as a map key without panicking.
// Interface values inside structs and arrays are checked by their dynamic
// type.
func hashable(v any) bool {
	return v == nil || hashableValue(reflect.ValueOf(v))
}

func hashableValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Interface:
		return rv.IsNil() || hashableValue(rv.Elem())
	case reflect.Struct:
		for i := range rv.NumField() {
			if !hashableValue(rv.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := range rv.Len() {
			if !hashableValue(rv.Index(i)) {
				return false
			}
		}
		return true
	default:
		return rv.Type().Comparable()
	}
}

// IntoSlice collects values into a []T in input order.
func IntoSlice[T any]() Collector {
	return func(values []any) (any, error) {
		out := make([]T, 0, len(values))
		for i := range values {
			v, err := elementAs[T](values, i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// IntoSet collects values into a map[T]struct{}. Duplicates merge.
func IntoSet[T comparable]() Collector {
	return func(values []any) (any, error) {
		out := make(map[T]struct{}, len(values))
		for i := range values {
			v, err := elementAs[T](values, i)
			if err != nil {
				return nil, err
			}
			if !hashable(any(v)) {
				return nil, fmt.Errorf("element %d of type %T cannot be a set member", i, v)
			}
			out[v] = struct{}{}
		}
		return out, nil
	}
}

// IntoUnique collects values into a []T keeping the first occurrence of
// each value.
func IntoUnique[T comparable]() Collector {
	return func(values []any) (any, error) {
		seen := make(map[T]bool, len(values))
		out := make([]T, 0, len(values))
		for i := range values {
			v, err := elementAs[T](values, i)
			if err != nil {
				return nil, err
			}
			if !hashable(any(v)) {
				return nil, fmt.Errorf("element %d of type %T cannot be compared", i, v)
			}
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		return out, nil
	}
}

// IntoSortedSet collects values into a sorted []T without duplicates.
func IntoSortedSet[T cmp.Ordered]() Collector {
	return func(values []any) (any, error) {
		out := make([]T, 0, len(values))
		for i := range values {
			v, err := elementAs[T](values, i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		slices.Sort(out)
		return slices.Compact(out), nil
	}
}

// IntoMap collects Pair[K, V] values into a map[K]V. A key seen twice is an
// error.
func IntoMap[K comparable, V any]() Collector {
	return func(values []any) (any, error) {
		out := make(map[K]V, len(values))
		for i := range values {
			p, err := elementAs[Pair[K, V]](values, i)
			if err != nil {
				return nil, err
			}
			if !hashable(any(p.Key)) {
				return nil, fmt.Errorf("key %d of type %T cannot be a map key", i, p.Key)
			}
			if _, dup := out[p.Key]; dup {
				return nil, fmt.Errorf("duplicate key %v", p.Key)
			}
			out[p.Key] = p.Value
		}
		return out, nil
	}
}

package scanner

import (
	"fmt"
	"slices"
)

// Bindings maps the names bound by a rule to the scanned values. Names
// bound inside a repetition map to the container built by its collector.
type Bindings map[string]any

// Names returns the bound names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the value bound to name as a T.
func Get[T any](b Bindings, name string) (T, error) {
	var zero T
	v, ok := b[name]
	if !ok {
		return zero, fmt.Errorf("no value bound to '%s'", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("value bound to '%s' is %T, not %T", name, v, zero)
	}
	return t, nil
}

// MustGet is like Get but panics if the name is unbound or has another type.
func MustGet[T any](b Bindings, name string) T {
	v, err := Get[T](b, name)
	if err != nil {
		panic(err)
	}
	return v
}

package scanner

// Pair is a key and value scanned from "key: value".
type Pair[K, V any] struct {
	Key   K
	Value V
}

// KeyValue scans "key: value" into a Pair.
func KeyValue[K, V any](key Scanner[K], value Scanner[V]) Scanner[Pair[K, V]] {
	return ScanFunc[Pair[K, V]](func(c Cursor) (Pair[K, V], Cursor, error) {
		var p Pair[K, V]
		k, next, err := key.Scan(c)
		if err != nil {
			return p, c, err
		}
		next, err = next.MatchLiteral(":")
		if err != nil {
			return p, c, err
		}
		v, next, err := value.Scan(next)
		if err != nil {
			return p, c, err
		}
		p.Key, p.Value = k, v
		return p, next, nil
	})
}

const elementName = "element"

// delimited scans openText, a comma separated run of elements, and closeText,
// collecting the elements with collect.
func delimited[T, E any](openText, closeText string, elem Scanner[E], collect Collector, expected string) Scanner[T] {
	terms := []Term{
		Lit(openText),
		Repeat(ZeroOrMore(Bind(elementName, elem)).SeparatedBy(Lit(",")).Into(collect)),
		Lit(closeText),
	}
	return ScanFunc[T](func(c Cursor) (T, Cursor, error) {
		var zero T
		b := make(Bindings)
		next, err := matchTerms(c, terms, b)
		if err != nil {
			return zero, c, failure(c.SkipSpace(), expected, err)
		}
		v, ok := b[elementName].(T)
		if !ok {
			return zero, c, failure(c.SkipSpace(), expected, nil)
		}
		return v, next, nil
	})
}

// SliceOf scans a list such as "[1, 2, 3]".
func SliceOf[T any](elem Scanner[T]) Scanner[[]T] {
	return delimited[[]T]("[", "]", elem, IntoSlice[T](), "a list")
}

// SetOf scans a set such as "{a, b, c}". Duplicates merge.
func SetOf[T comparable](elem Scanner[T]) Scanner[map[T]struct{}] {
	return delimited[map[T]struct{}]("{", "}", elem, IntoSet[T](), "a set")
}

// MapOf scans a map such as "{a: 1, b: 2}". Duplicate keys fail.
func MapOf[K comparable, V any](key Scanner[K], value Scanner[V]) Scanner[map[K]V] {
	return delimited[map[K]V]("{", "}", KeyValue(key, value), IntoMap[K, V](), "a map")
}

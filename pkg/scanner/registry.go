package scanner

import (
	"fmt"
	"slices"
)

// namedScanners are the scanners a rules file can refer to by name.
var namedScanners = map[string]func() Scanner[any]{
	"int":              func() Scanner[any] { return Erase(Int[int64]()) },
	"uint":             func() Scanner[any] { return Erase(Int[uint64]()) },
	"float":            func() Scanner[any] { return Erase(Float[float64]()) },
	"bool":             func() Scanner[any] { return Erase(Bool()) },
	"char":             func() Scanner[any] { return Erase(As(Char(), func(r rune) (string, error) { return string(r), nil })) },
	"string":           func() Scanner[any] { return Erase(Str()) },
	"word":             func() Scanner[any] { return Erase(Word()) },
	"non-space":        func() Scanner[any] { return Erase(NonSpace()) },
	"line":             func() Scanner[any] { return Erase(Line()) },
	"number":           func() Scanner[any] { return Erase(Number()) },
	"ident":            func() Scanner[any] { return Erase(Ident()) },
	"everything":       func() Scanner[any] { return Erase(Everything()) },
	"quoted":           func() Scanner[any] { return Erase(QuotedString()) },
	"hex":              func() Scanner[any] { return Erase(Hex[uint64]()) },
	"octal":            func() Scanner[any] { return Erase(Octal[uint64]()) },
	"binary":           func() Scanner[any] { return Erase(Binary[uint64]()) },
	"duration":         func() Scanner[any] { return Erase(GoDuration()) },
	"iso8601-duration": func() Scanner[any] { return Erase(ISO8601Duration()) },
	"ip":               func() Scanner[any] { return Erase(IP()) },
	"ipv4":             func() Scanner[any] { return Erase(IPv4()) },
	"ipv6":             func() Scanner[any] { return Erase(IPv6()) },
	"addr-port":        func() Scanner[any] { return Erase(AddrPort()) },
	"space":            func() Scanner[any] { return Erase(Space()) },
	"horizontal-space": func() Scanner[any] { return Erase(HorizontalSpace()) },
	"newline":          func() Scanner[any] { return Erase(LineBreak()) },
}

// LookupScanner returns the scanner registered under name.
func LookupScanner(name string) (Scanner[any], error) {
	build, ok := namedScanners[name]
	if !ok {
		return nil, fmt.Errorf("unknown scanner '%s'", name)
	}
	return build(), nil
}

// ScannerNames lists the registered scanner names, sorted.
func ScannerNames() []string {
	names := make([]string, 0, len(namedScanners))
	for name := range namedScanners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var namedCollectors = map[string]Collector{
	"list":   IntoSlice[any](),
	"set":    IntoSet[any](),
	"unique": IntoUnique[any](),
	"map":    IntoMap[any, any](),
}

// LookupCollector returns the collector registered under name. The empty
// name means a plain list.
func LookupCollector(name string) (Collector, error) {
	if name == "" {
		return nil, nil
	}
	c, ok := namedCollectors[name]
	if !ok {
		return nil, fmt.Errorf("unknown collector '%s'", name)
	}
	return c, nil
}

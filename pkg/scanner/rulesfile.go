package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	Policy PolicySpec `yaml:"policy,omitempty"`
	Rules  []RuleSpec `yaml:"rules"`
}

// PolicySpec names the matching policies. Empty fields keep the defaults.
type PolicySpec struct {
	Compare string `yaml:"compare,omitempty"`
	Space   string `yaml:"space,omitempty"`
	Words   string `yaml:"words,omitempty"`
}

// RuleSpec represents one rule: a name and its terms
type RuleSpec struct {
	Name  string     `yaml:"name"`
	Terms []TermSpec `yaml:"terms"`
}

// TermSpec represents one term. Exactly one of Literal, Bind, Repeat, Rest
// and End is set.
type TermSpec struct {
	Literal string      `yaml:"literal,omitempty"`
	Bind    string      `yaml:"bind,omitempty"`
	Repeat  *RepeatSpec `yaml:"repeat,omitempty"`
	Rest    string      `yaml:"rest,omitempty"`
	End     bool        `yaml:"end,omitempty"`

	// Binding options.
	Scanner    string `yaml:"scanner,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Value      string `yaml:"value,omitempty"`
	Element    string `yaml:"element,omitempty"`
	Regex      string `yaml:"regex,omitempty"`
	MaxWidth   int    `yaml:"max_width,omitempty"`
	ExactWidth int    `yaml:"exact_width,omitempty"`
	MinWidth   int    `yaml:"min_width,omitempty"`
}

// RepeatSpec represents a repetition group
type RepeatSpec struct {
	Terms     []TermSpec `yaml:"terms"`
	Separator []TermSpec `yaml:"separator,omitempty"`
	Min       int        `yaml:"min,omitempty"`
	Max       int        `yaml:"max,omitempty"`
	Collect   string     `yaml:"collect,omitempty"`
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules parses YAML rules.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &rules, nil
}

// Marshal renders the rules as YAML.
func (rf *RulesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return data, nil
}

// CompilePolicy resolves the policy names.
func (ps PolicySpec) CompilePolicy() (Policy, error) {
	p := DefaultPolicy()
	var err error
	if ps.Compare != "" {
		if p.Compare, err = ParseComparison(ps.Compare); err != nil {
			return p, err
		}
	}
	if ps.Space != "" {
		if p.Space, err = ParseSpaceSkip(ps.Space); err != nil {
			return p, err
		}
	}
	if ps.Words != "" {
		if p.Words, err = ParseWordSlice(ps.Words); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Compile turns the file into a rule set whose actions return the
// bindings, and the policy it names.
func (rf *RulesFile) Compile() (RuleSet[Bindings], Policy, error) {
	policy, err := rf.Policy.CompilePolicy()
	if err != nil {
		return nil, policy, fmt.Errorf("policy: %w", err)
	}
	rules := make(RuleSet[Bindings], 0, len(rf.Rules))
	for i, spec := range rf.Rules {
		terms, err := compileTerms(spec.Terms)
		if err != nil {
			return nil, policy, fmt.Errorf("rule %d (%s): %w", i, spec.Name, err)
		}
		rule := NewRule[Bindings](spec.Name, terms...).Then(func(b Bindings) (Bindings, error) {
			return b, nil
		})
		rules = append(rules, rule)
	}
	if err := rules.Validate(); err != nil {
		return nil, policy, err
	}
	return rules, policy, nil
}

// Engine compiles the file into a ready engine.
func (rf *RulesFile) Engine(logger *slog.Logger) (*Engine[Bindings], error) {
	rules, policy, err := rf.Compile()
	if err != nil {
		return nil, err
	}
	return NewEngine(rules, policy, logger)
}

func compileTerms(specs []TermSpec) ([]Term, error) {
	terms := make([]Term, 0, len(specs))
	for i, spec := range specs {
		t, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func (ts TermSpec) compile() (Term, error) {
	set := 0
	for _, present := range []bool{ts.Literal != "", ts.Bind != "", ts.Repeat != nil, ts.Rest != "", ts.End} {
		if present {
			set++
		}
	}
	if set != 1 {
		return Term{}, fmt.Errorf("%w: a term needs exactly one of literal, bind, repeat, rest or end", ErrInvalidRule)
	}

	switch {
	case ts.Literal != "":
		return Lit(ts.Literal), nil
	case ts.Rest != "":
		return Rest(ts.Rest), nil
	case ts.End:
		return End(), nil
	case ts.Repeat != nil:
		r, err := ts.Repeat.compile()
		if err != nil {
			return Term{}, err
		}
		return Repeat(r), nil
	}

	s, err := ts.bindingScanner()
	if err != nil {
		return Term{}, fmt.Errorf("binding '%s': %w", ts.Bind, err)
	}
	return Bind(ts.Bind, s), nil
}

func (rs *RepeatSpec) compile() (Repetition, error) {
	terms, err := compileTerms(rs.Terms)
	if err != nil {
		return Repetition{}, err
	}
	sep, err := compileTerms(rs.Separator)
	if err != nil {
		return Repetition{}, fmt.Errorf("separator: %w", err)
	}
	collect, err := LookupCollector(rs.Collect)
	if err != nil {
		return Repetition{}, err
	}
	return Repetition{Terms: terms, Separator: sep, Min: rs.Min, Max: rs.Max, Collect: collect}, nil
}

// bindingScanner builds the scanner for a binding, then applies the
// regex and width options around it.
func (ts TermSpec) bindingScanner() (Scanner[any], error) {
	var s Scanner[any]
	var err error
	switch {
	case ts.Scanner != "":
		s, err = compositeScanner(ts.Scanner, ts.Key, ts.Value, ts.Element)
	case ts.Regex == "":
		return nil, fmt.Errorf("%w: no scanner or regex given", ErrInvalidRule)
	}
	if err != nil {
		return nil, err
	}

	if ts.Regex != "" {
		re, err := regexp.Compile(ts.Regex)
		if err != nil {
			return nil, fmt.Errorf("failed to compile regex '%s': %w", ts.Regex, err)
		}
		if s == nil {
			s = Erase(Regexp(re))
		} else {
			s = RegexpAs(re, s)
		}
	}

	widths := 0
	for _, w := range []int{ts.MaxWidth, ts.ExactWidth, ts.MinWidth} {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative width %d", ErrInvalidRule, w)
		}
		if w > 0 {
			widths++
		}
	}
	if widths > 1 {
		return nil, fmt.Errorf("%w: only one of max_width, exact_width and min_width may be set", ErrInvalidRule)
	}
	switch {
	case ts.MaxWidth > 0:
		s = MaxWidth(ts.MaxWidth, s)
	case ts.ExactWidth > 0:
		s = ExactWidth(ts.ExactWidth, s)
	case ts.MinWidth > 0:
		s = MinWidth(ts.MinWidth, s)
	}
	return s, nil
}

// compositeScanner resolves scanners that take sub-scanners by name.
func compositeScanner(name, key, value, element string) (Scanner[any], error) {
	switch name {
	case "kv", "map":
		k, err := LookupScanner(key)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		v, err := LookupScanner(value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		if name == "kv" {
			return Erase(KeyValue(k, v)), nil
		}
		return Erase(MapOf(k, v)), nil
	case "list", "set":
		e, err := LookupScanner(element)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		if name == "list" {
			return Erase(SliceOf(e)), nil
		}
		return Erase(SetOf(e)), nil
	}
	return LookupScanner(name)
}

// DefaultRulesFile returns a small example rules file.
func DefaultRulesFile() *RulesFile {
	return &RulesFile{
		Policy: PolicySpec{
			Compare: IgnoreCase.String(),
			Space:   IgnoreSpace.String(),
			Words:   Wordish.String(),
		},
		Rules: []RuleSpec{
			{
				Name: "move",
				Terms: []TermSpec{
					{Literal: "move"},
					{Bind: "dx", Scanner: "int"},
					{Literal: ","},
					{Bind: "dy", Scanner: "int"},
				},
			},
			{
				Name: "numbers",
				Terms: []TermSpec{
					{Literal: "nums:"},
					{Repeat: &RepeatSpec{
						Terms:     []TermSpec{{Bind: "values", Scanner: "float"}},
						Separator: []TermSpec{{Literal: ","}},
						Collect:   "list",
					}},
					{End: true},
				},
			},
			{
				Name: "connect",
				Terms: []TermSpec{
					{Literal: "connect to"},
					{Bind: "address", Scanner: "addr-port"},
					{Literal: "within"},
					{Bind: "timeout", Scanner: "duration"},
				},
			},
			{
				Name: "tag",
				Terms: []TermSpec{
					{Bind: "code", Regex: `[A-Z]{2}(?P<scan>[0-9]+)`, Scanner: "int"},
					{Rest: "comment"},
				},
			},
		},
	}
}

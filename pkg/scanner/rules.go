package scanner

import (
	"fmt"
	"log/slog"
)

// TermKind identifies the variant of a Term.
type TermKind int

const (
	LiteralTerm TermKind = iota
	BindingTerm
	RepetitionTerm
	RemainderTerm
	EndTerm
)

func (k TermKind) String() string {
	switch k {
	case LiteralTerm:
		return "literal"
	case BindingTerm:
		return "binding"
	case RepetitionTerm:
		return "repetition"
	case RemainderTerm:
		return "remainder"
	case EndTerm:
		return "end"
	}
	return fmt.Sprintf("TermKind(%d)", int(k))
}

// Term is one unit of a rule pattern.
type Term struct {
	Kind    TermKind
	Text    string       // literal text
	Name    string       // binding or remainder name
	Scanner Scanner[any] // binding scanner
	Repeat  *Repetition
}

// Lit matches literal text.
func Lit(text string) Term {
	return Term{Kind: LiteralTerm, Text: text}
}

// Bind scans a value with s and binds it to name.
func Bind[T any](name string, s Scanner[T]) Term {
	return Term{Kind: BindingTerm, Name: name, Scanner: Erase(s)}
}

// Discard scans a value with s and throws it away.
func Discard[T any](s Scanner[T]) Term {
	return Bind("_", s)
}

// Rest binds all unconsumed input to name. No whitespace is skipped first,
// and the text may be empty. It must be the last term of a rule.
func Rest(name string) Term {
	return Term{Kind: RemainderTerm, Name: name}
}

// End requires that only skippable whitespace remains.
func End() Term {
	return Term{Kind: EndTerm}
}

// Repeat matches a repetition group.
func Repeat(r Repetition) Term {
	return Term{Kind: RepetitionTerm, Repeat: &r}
}

func isDiscard(name string) bool {
	return name == "" || name == "_"
}

// matchTerms matches terms left to right, recording bindings in b. There is
// no backtracking: the first failing term fails the sequence.
func matchTerms(c Cursor, terms []Term, b Bindings) (Cursor, *ScanError) {
	for _, t := range terms {
		switch t.Kind {
		case LiteralTerm:
			next, err := c.MatchLiteral(t.Text)
			if err != nil {
				return c, asScanError(err, c, fmt.Sprintf("%q", t.Text))
			}
			c = next
		case BindingTerm:
			v, next, err := t.Scanner.Scan(c)
			if err != nil {
				return c, asScanError(err, prepare(t.Scanner, c), "a value for "+t.Name)
			}
			if !isDiscard(t.Name) {
				b[t.Name] = v
			}
			c = next
		case RepetitionTerm:
			next, err := t.Repeat.match(c, b)
			if err != nil {
				return c, err
			}
			c = next
		case RemainderTerm:
			if !isDiscard(t.Name) {
				b[t.Name] = c.Remaining()
			}
			c = c.advance(c.Len())
		case EndTerm:
			next, err := c.AtEnd()
			if err != nil {
				return c, asScanError(err, c, "end of input")
			}
			c = next
		}
	}
	return c, nil
}

// boundNames lists the names terms bind, in order, recursing into
// repetitions.
func boundNames(terms []Term) []string {
	var names []string
	for _, t := range terms {
		switch t.Kind {
		case BindingTerm, RemainderTerm:
			if !isDiscard(t.Name) {
				names = append(names, t.Name)
			}
		case RepetitionTerm:
			if t.Repeat != nil {
				names = append(names, t.Repeat.boundNames()...)
			}
		}
	}
	return names
}

// Rule is an ordered term sequence plus an action run on a match. A nil
// Action leaves the match value at its zero value.
type Rule[R any] struct {
	Name   string
	Terms  []Term
	Action func(Bindings) (R, error)
}

// NewRule builds a rule without an action.
func NewRule[R any](name string, terms ...Term) Rule[R] {
	return Rule[R]{Name: name, Terms: terms}
}

// Then returns a copy of the rule with the given action.
func (r Rule[R]) Then(action func(Bindings) (R, error)) Rule[R] {
	r.Action = action
	return r
}

func (r Rule[R]) label(i int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("#%d", i)
}

// Validate checks the structure of the rule: a remainder may only be the
// last term and never inside a repetition, and binding names are unique.
func (r Rule[R]) Validate() error {
	for i, t := range r.Terms {
		if t.Kind == RemainderTerm && i != len(r.Terms)-1 {
			return fmt.Errorf("%w: remainder '%s' must be the last term", ErrInvalidRule, t.Name)
		}
		if err := validateTerm(t, false); err != nil {
			return err
		}
	}
	seen := make(map[string]bool)
	for _, name := range boundNames(r.Terms) {
		if seen[name] {
			return fmt.Errorf("%w: name '%s' is bound more than once", ErrInvalidRule, name)
		}
		seen[name] = true
	}
	return nil
}

func validateTerm(t Term, inRepetition bool) error {
	switch t.Kind {
	case LiteralTerm:
		if t.Text == "" {
			return fmt.Errorf("%w: empty literal", ErrInvalidRule)
		}
	case BindingTerm:
		if t.Scanner == nil {
			return fmt.Errorf("%w: binding '%s' has no scanner", ErrInvalidRule, t.Name)
		}
	case RemainderTerm:
		if inRepetition {
			return fmt.Errorf("%w: remainder '%s' inside a repetition", ErrInvalidRule, t.Name)
		}
	case RepetitionTerm:
		if t.Repeat == nil {
			return fmt.Errorf("%w: repetition without a group", ErrInvalidRule)
		}
		return t.Repeat.validate()
	case EndTerm:
	default:
		return fmt.Errorf("%w: unknown term kind %v", ErrInvalidRule, t.Kind)
	}
	return nil
}

// RuleSet is an ordered list of rules. The first rule to match wins.
type RuleSet[R any] []Rule[R]

func (rs RuleSet[R]) Validate() error {
	for i, r := range rs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %s: %w", r.label(i), err)
		}
	}
	return nil
}

// Match is the result of a successful scan.
type Match[R any] struct {
	Rule     int    // index of the winning rule
	Name     string // name of the winning rule
	Value    R      // result of the rule's action
	Bindings Bindings
	End      int    // offset just after the matched text
	Rest     string // input left unconsumed by the rule
}

// Engine scans inputs against a validated rule set. It holds no mutable
// state and may be shared between goroutines.
type Engine[R any] struct {
	rules  RuleSet[R]
	policy Policy
	logger *slog.Logger
}

// NewEngine validates rules and returns an engine that scans with policy.
// A nil logger disables logging.
func NewEngine[R any](rules RuleSet[R], policy Policy, logger *slog.Logger) (*Engine[R], error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine[R]{rules: rules, policy: policy, logger: logger}, nil
}

func (e *Engine[R]) Policy() Policy     { return e.policy }
func (e *Engine[R]) Rules() RuleSet[R] { return e.rules }

// Scan tries each rule in order from the start of input and returns the
// first full match. If no rule matches, the error is a *NoMatchError with
// one reason per rule. An error from a rule's action is returned wrapped
// with the rule's name and no further rules are tried.
func (e *Engine[R]) Scan(input string) (*Match[R], error) {
	var failures []RuleFailure
	for i, rule := range e.rules {
		b := make(Bindings)
		end, serr := matchTerms(NewCursor(input, e.policy), rule.Terms, b)
		if serr != nil {
			e.logger.Debug("rule did not match",
				slog.Int("rule", i),
				slog.String("name", rule.Name),
				slog.Any("error", serr))
			failures = append(failures, RuleFailure{Rule: i, Name: rule.Name, Err: serr})
			continue
		}

		e.logger.Debug("rule matched",
			slog.Int("rule", i),
			slog.String("name", rule.Name),
			slog.Int("end", end.Offset()))
		m := &Match[R]{
			Rule:     i,
			Name:     rule.Name,
			Bindings: b,
			End:      end.Offset(),
			Rest:     end.Remaining(),
		}
		if rule.Action != nil {
			v, err := rule.Action(b)
			if err != nil {
				return nil, fmt.Errorf("action of rule %s: %w", rule.label(i), err)
			}
			m.Value = v
		}
		return m, nil
	}
	return nil, &NoMatchError{Reasons: failures}
}

// Scan validates rules and scans input with them.
func Scan[R any](input string, rules RuleSet[R], policy Policy) (*Match[R], error) {
	e, err := NewEngine(rules, policy, nil)
	if err != nil {
		return nil, err
	}
	return e.Scan(input)
}

// MustScan is like Scan but panics on failure.
func MustScan[R any](input string, rules RuleSet[R], policy Policy) *Match[R] {
	m, err := Scan(input, rules, policy)
	if err != nil {
		panic(fmt.Sprintf("scan %q: %v", input, err))
	}
	return m
}

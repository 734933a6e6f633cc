package scanner_test

import (
	"errors"
	"fmt"

	"github.com/spicery/nutmeg-scanner/pkg/scanner"
)

func ExampleScan() {
	type command struct {
		verb string
		dx   int
		dy   int
	}

	rules := scanner.RuleSet[command]{
		scanner.NewRule[command]("move",
			scanner.Lit("move"),
			scanner.Bind("dx", scanner.Int[int]()),
			scanner.Lit(","),
			scanner.Bind("dy", scanner.Int[int]()),
		).Then(func(b scanner.Bindings) (command, error) {
			return command{"move", scanner.MustGet[int](b, "dx"), scanner.MustGet[int](b, "dy")}, nil
		}),
		scanner.NewRule[command]("stop", scanner.Lit("stop")).Then(func(scanner.Bindings) (command, error) {
			return command{verb: "stop"}, nil
		}),
	}

	for _, input := range []string{"move 3, -4", "STOP now", "jump"} {
		m, err := scanner.Scan(input, rules, scanner.Policy{Compare: scanner.IgnoreCase})
		if errors.Is(err, scanner.ErrNoRuleMatched) {
			fmt.Printf("%q: no match\n", input)
			continue
		}
		fmt.Printf("%q: %+v rest=%q\n", input, m.Value, m.Rest)
	}
	// Output:
	// "move 3, -4": {verb:move dx:3 dy:-4} rest=""
	// "STOP now": {verb:stop dx:0 dy:0} rest=" now"
	// "jump": no match
}

func ExampleRepeat() {
	rules := scanner.RuleSet[any]{
		scanner.NewRule[any]("nums",
			scanner.Lit("nums:"),
			scanner.Repeat(scanner.ZeroOrMore(scanner.Bind("n", scanner.Int[int]())).
				SeparatedBy(scanner.Lit(",")).
				Into(scanner.IntoSlice[int]())),
		),
	}

	m := scanner.MustScan("nums: 1, 2, 3", rules, scanner.DefaultPolicy())
	fmt.Println(m.Bindings["n"])
	// Output: [1 2 3]
}

func ExampleNoMatchError() {
	rules := scanner.RuleSet[any]{
		scanner.NewRule[any]("greeting", scanner.Lit("hello"), scanner.Bind("name", scanner.Word())),
		scanner.NewRule[any]("count", scanner.Bind("n", scanner.Int[int]())),
	}

	_, err := scanner.Scan("hello !", rules, scanner.DefaultPolicy())
	var nm *scanner.NoMatchError
	if errors.As(err, &nm) {
		for _, reason := range nm.Reasons {
			fmt.Println(reason)
		}
	}
	// Output:
	// rule greeting: expected a word, found "!" at offset 6
	// rule count: expected an integer, found "hello !" at offset 0
}

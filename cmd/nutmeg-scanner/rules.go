package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-scanner/pkg/scanner"
)

func init() {
	rulesCmd.RunE = printRules
	rulesCmd.Flags().BoolVarP(&rulesCmd.listScanners, "list-scanners", "l", false,
		"List the scanner names a rules file may use instead")
	rulesCmd.Flags().StringVarP(&rulesCmd.check, "check", "c", "",
		"Validate the given rules file instead")
	rootCmd.AddCommand(&rulesCmd.Command)
}

var rulesCmd = struct {
	cobra.Command
	listScanners bool
	check        string
}{
	Command: cobra.Command{
		Use:   "rules",
		Short: "Print an example rules file in YAML",
		Args:  cobra.NoArgs,
	},
}

func printRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch {
	case rulesCmd.listScanners:
		names := append(scanner.ScannerNames(), "kv", "list", "map", "set")
		fmt.Fprintln(out, strings.Join(names, "\n"))
		return nil
	case rulesCmd.check != "":
		rf, err := scanner.LoadRulesFile(rulesCmd.check)
		if err != nil {
			return err
		}
		rules, policy, err := rf.Compile()
		if err != nil {
			return fmt.Errorf("rules file '%s' is invalid: %w", rulesCmd.check, err)
		}
		fmt.Fprintf(out, "%s: %d rules, %s\n", rulesCmd.check, len(rules), policy)
		return nil
	}

	data, err := scanner.DefaultRulesFile().Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

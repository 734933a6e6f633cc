package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-scanner/pkg/scanner"
)

func init() {
	scanCmd.RunE = runScan
	flags := scanCmd.Flags()
	flags.StringVarP(&scanCmd.rules, "rules", "r", "",
		"YAML rules file (default from NUTMEG_SCANNER_RULES)")
	flags.StringVarP(&scanCmd.input, "input", "i", "", "Input file (defaults to stdin)")
	flags.StringVarP(&scanCmd.output, "output", "o", "", "Output file (defaults to stdout)")
	flags.StringVar(&scanCmd.compare, "compare", "",
		"Override the comparison policy: exact, ignore-case, normalized, ignore-case-normalized")
	flags.StringVar(&scanCmd.space, "space", "",
		"Override the space policy: ignore, exact, fuzzy, ignore-non-line, horizontal, newline")
	flags.StringVar(&scanCmd.words, "words", "", "Override the word slicing: wordish, non-space")
	flags.BoolVar(&scanCmd.whole, "whole", false, "Scan the whole input as one text instead of line by line")
	flags.BoolVar(&scanCmd.exit0, "exit0", false, "Exit with code 0 even when some input did not match")
	rootCmd.AddCommand(&scanCmd.Command)
}

var scanCmd = struct {
	cobra.Command
	rules   string
	input   string
	output  string
	compare string
	space   string
	words   string
	whole   bool
	exit0   bool
}{
	Command: cobra.Command{
		Use:   "scan",
		Short: "Scan input lines with a rules file and print JSON results",
		Args:  cobra.NoArgs,
	},
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := rootCmd.cfg
	logger := rootCmd.logger

	rulesPath := firstNonEmpty(scanCmd.rules, cfg.Rules)
	if rulesPath == "" {
		return errors.New("no rules file given: use --rules or NUTMEG_SCANNER_RULES")
	}
	rf, err := scanner.LoadRulesFile(rulesPath)
	if err != nil {
		return err
	}
	if v := firstNonEmpty(scanCmd.compare, cfg.Compare); v != "" {
		rf.Policy.Compare = v
	}
	if v := firstNonEmpty(scanCmd.space, cfg.Space); v != "" {
		rf.Policy.Space = v
	}
	if v := firstNonEmpty(scanCmd.words, cfg.Words); v != "" {
		rf.Policy.Words = v
	}
	engine, err := rf.Engine(logger)
	if err != nil {
		return fmt.Errorf("error applying rules from '%s': %w", rulesPath, err)
	}
	logger.Info("rules loaded", "file", rulesPath, "rules", len(engine.Rules()), "policy", engine.Policy().String())

	var in io.Reader = cmd.InOrStdin()
	if scanCmd.input != "" {
		file, err := os.Open(scanCmd.input)
		if err != nil {
			return fmt.Errorf("error reading file '%s': %w", scanCmd.input, err)
		}
		defer file.Close()
		in = file
	}

	var out io.Writer = cmd.OutOrStdout()
	var outFile *os.File
	if scanCmd.output != "" {
		outFile, err = os.Create(scanCmd.output)
		if err != nil {
			return fmt.Errorf("error creating output file '%s': %w", scanCmd.output, err)
		}
		out = outFile
	}

	stats, scanErr := scanInput(engine, in, out, scanCmd.whole)

	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("error closing output file '%s': %w", scanCmd.output, err)
		}
	}
	if scanErr != nil {
		return scanErr
	}

	logger.Info("scan finished", "inputs", stats.total, "failed", stats.failed)
	if stats.failed > 0 && !scanCmd.exit0 {
		return fmt.Errorf("%d of %d inputs did not match", stats.failed, stats.total)
	}
	return nil
}

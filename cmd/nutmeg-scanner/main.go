// A command line tool that scans lines of text into typed values using
// rules read from a YAML file
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&rootCmd.logLevel, "log-level", "",
		"Log level: debug, info, warn or error (default from NUTMEG_SCANNER_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&rootCmd.logFormat, "log-format", "",
		"Log format: text or json (default from NUTMEG_SCANNER_LOG_FORMAT)")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = struct {
	cobra.Command
	cfg       Config
	logLevel  string
	logFormat string
	logger    *slog.Logger
}{
	Command: cobra.Command{
		Use:   "nutmeg-scanner",
		Short: "Scan text into typed values using ordered rules",
		Long: `nutmeg-scanner applies an ordered list of scanning rules to its input.
Each input line is matched against the rules in order; the first rule that
matches wins and its bindings are printed as one JSON object per line.

See 'nutmeg-scanner rules' for an example rules file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nutmeg-scanner version %s\n", version)
	},
}

// setup loads the environment config and builds the logger before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rootCmd.cfg = cfg

	level, err := parseLogLevel(firstNonEmpty(rootCmd.logLevel, cfg.LogLevel))
	if err != nil {
		return err
	}
	format, err := parseLogFormat(firstNonEmpty(rootCmd.logFormat, cfg.LogFormat))
	if err != nil {
		return err
	}
	rootCmd.logger = newLogger(
		withLevel(level),
		withFormat(format),
		withOutput(cmd.ErrOrStderr()),
		withAttr(slog.String("command", cmd.Name())),
	)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

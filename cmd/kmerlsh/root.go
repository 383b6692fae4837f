package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmerlsh"
)

var (
	flagVerbose bool
	flagJSONLog bool
)

var rootCmd = &cobra.Command{
	Use:   "kmerlsh",
	Short: "Locality-sensitive partitioning of the k-mer space",
	Long: `kmerlsh grows islands around seed centers in the space of k-mers over
{A, C, G, T} under Levenshtein distance and writes the resulting labeling as a
hash file. Companion commands build seed center lists, sample collision rates
of a finished labeling, and evaluate edit distances.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLog, "json-log", false, "emit logs as JSON")
}

// newLogger builds the logger the persistent flags ask for.
func newLogger() *kmerlsh.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	if flagJSONLog {
		return kmerlsh.NewJSONLogger(level)
	}
	return kmerlsh.NewTextLogger(level)
}

// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command stamtavla converts GEDCOM files offline and issues API tokens.
//
//	stamtavla parse family.ged other.ged --format yaml
//	stamtavla generate tree.json -o tree.ged
//	stamtavla token --sub anna --role editor
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stamtavla:", err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Results go to stdout, logs and
// errors to stderr.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "stamtavla",
		Short:         "GEDCOM conversion and token tooling for Stamtavla",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	// Resolved lazily so the parsed --verbose flag is honoured.
	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(
		newParseCommand(logger),
		newGenerateCommand(logger),
		newTokenCommand(),
	)
	return root
}

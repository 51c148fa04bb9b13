// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/stamtavla/internal/gedcom"
	"github.com/taibuivan/stamtavla/internal/genealogy"
)

// parsedFile is one entry of a multi-file parse.
type parsedFile struct {
	File          string                   `json:"file" yaml:"file"`
	Individuals   []genealogy.Individual   `json:"individuals" yaml:"individuals"`
	Relationships []genealogy.Relationship `json:"relationships" yaml:"relationships"`
}

func newParseCommand(logger func() *slog.Logger) *cobra.Command {
	var (
		format  string
		workers int
	)

	command := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print GEDCOM files as individuals and relationships",
		Long: "Parse decodes and parses every FILE concurrently. One file prints its document;\n" +
			"several files print a list of documents in argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			encode, err := encoderFor(format)
			if err != nil {
				return err
			}

			files, err := parseFiles(command.Context(), logger(), args, workers)
			if err != nil {
				return err
			}

			if len(files) == 1 {
				return encode(command.OutOrStdout(), gedcom.Document{
					Individuals:   files[0].Individuals,
					Relationships: files[0].Relationships,
				})
			}
			return encode(command.OutOrStdout(), files)
		},
	}

	command.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	command.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "files parsed at the same time")
	return command
}

// parseFiles reads every path on a bounded errgroup. The first failure
// cancels the files not yet started.
func parseFiles(ctx context.Context, logger *slog.Logger, paths []string, workers int) ([]parsedFile, error) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(workers, 1))

	results := make([]parsedFile, len(paths))
	for index, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			text, err := gedcom.ReadFile(path)
			if err != nil {
				return err
			}

			document := gedcom.Parse(text)
			results[index] = parsedFile{
				File:          path,
				Individuals:   document.Individuals,
				Relationships: document.Relationships,
			}
			logger.Debug("gedcom_parsed",
				slog.String("file", path),
				slog.Int("individuals", len(document.Individuals)),
				slog.Int("relationships", len(document.Relationships)),
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// encoderFor returns a writer of indented JSON or YAML.
func encoderFor(format string) (func(io.Writer, any) error, error) {
	switch format {
	case "json":
		return func(writer io.Writer, value any) error {
			encoder := json.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			return encoder.Encode(value)
		}, nil
	case "yaml":
		return func(writer io.Writer, value any) error {
			encoder := yaml.NewEncoder(writer)
			encoder.SetIndent(2)
			if err := encoder.Encode(value); err != nil {
				return err
			}
			return encoder.Close()
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
}

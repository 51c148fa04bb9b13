// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/stamtavla/internal/gedcom"
)

func newGenerateCommand(logger func() *slog.Logger) *cobra.Command {
	var (
		output string
		source string
	)

	command := &cobra.Command{
		Use:   "generate FILE.json",
		Short: "Render a JSON document of individuals and relationships as GEDCOM",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			document, err := readDocument(args[0])
			if err != nil {
				return err
			}

			text := gedcom.Generate(document.Individuals, document.Relationships, gedcom.WithSource(source))

			if output == "" {
				_, err := io.WriteString(command.OutOrStdout(), text+"\n")
				return err
			}
			if err := gedcom.WriteFile(output, text); err != nil {
				return err
			}
			logger().Debug("gedcom_written",
				slog.String("file", output),
				slog.Int("individuals", len(document.Individuals)),
			)
			return nil
		},
	}

	command.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	command.Flags().StringVar(&source, "source", gedcom.DefaultSource, "HEAD SOUR value")
	return command
}

func readDocument(path string) (*gedcom.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var document gedcom.Document
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &document, nil
}

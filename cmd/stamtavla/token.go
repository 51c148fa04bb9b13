// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/taibuivan/stamtavla/internal/platform/constants"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

// tokenEnv is the slice of the server configuration the token command needs.
type tokenEnv struct {
	PrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
}

func newTokenCommand() *cobra.Command {
	var (
		subject string
		role    string
		keyPath string
		ttl     time.Duration
	)

	command := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the Stamtavla API",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if keyPath == "" {
				var environment tokenEnv
				if err := env.Parse(&environment); err != nil {
					return err
				}
				keyPath = environment.PrivateKeyPath
			}
			if keyPath == "" {
				return errors.New("no private key: pass --key or set JWT_PRIVATE_KEY_PATH")
			}

			issuer, err := sec.LoadTokenIssuer(keyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := issuer.Issue(subject, sec.UserRole(role), ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(command.OutOrStdout(), token)
			return err
		},
	}

	command.Flags().StringVar(&subject, "sub", "", "token subject, usually the editor's name")
	command.Flags().StringVar(&role, "role", string(sec.RoleEditor), "admin, editor or viewer")
	command.Flags().StringVar(&keyPath, "key", "", "PEM private key (default $JWT_PRIVATE_KEY_PATH)")
	command.Flags().DurationVar(&ttl, "ttl", constants.DefaultTokenTTL, "token lifetime")
	_ = command.MarkFlagRequired("sub")
	return command
}

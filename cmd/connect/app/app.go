// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/stacklok/connect-client-go/api"
	"github.com/stacklok/connect-client-go/config"
	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/oauth"
	"github.com/stacklok/connect-client-go/parser"
)

// ProviderKey identifies tokens created by this command.
const ProviderKey = "connect-cli"

// app carries state shared by every command.
type app struct {
	configPath string
	debug      bool
	env        config.EnvReader
	store      *TokenStore

	cfg    *config.Config
	logger *slog.Logger

	// visit is handed the authorization URL during login when set.
	visit func(ctx context.Context, authURL string)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd(&config.OSEnvReader{}, NewTokenStore(DefaultKeyringService))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd(env config.EnvReader, store *TokenStore) *cobra.Command {
	return newRootCmd(&app{env: env, store: store})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "connect",
		Short:         "Log into a Connect server and browse its API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log requests and responses")

	root.AddCommand(
		a.newAuthorizeURLCmd(),
		a.newLoginCmd(),
		a.newGetCmd(),
		a.newSubmitCmd(),
		a.newLogoutCmd(),
	)
	return root
}

func (a *app) setup(logOutput io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.env); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, _ := cfg.LogFormat()
	level, _ := cfg.LogLevel()
	if a.debug {
		level = slog.LevelDebug
	}
	a.cfg = cfg
	a.logger = logging.New(
		logging.WithFormat(format),
		logging.WithLevel(level),
		logging.WithOutput(logOutput),
	)
	return nil
}

func (a *app) consumer() *oauth.Consumer {
	return oauth.NewConsumer(a.cfg.OAuth(),
		oauth.WithLogger(a.logger),
		oauth.WithStrictChecks(a.cfg.Strict()),
		oauth.WithRedirectURIPolicy(oauth.RedirectURIPolicyStrict),
	)
}

func (a *app) client(accessToken string) (*api.Client, error) {
	c, err := api.NewClient(parser.New(),
		api.WithEndpoint(a.cfg.APIEndpoint),
		api.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	c.SetAccessToken(accessToken)
	return c, nil
}

// authenticatedClient returns a client carrying the stored token.
func (a *app) authenticatedClient() (*api.Client, error) {
	tok, err := a.store.Load(a.cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return a.client(tok.Credentials())
}

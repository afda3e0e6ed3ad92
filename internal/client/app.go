// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/adapter"
	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/spf13/cobra"
)

var _ Client = (*App)(nil)

// App is the command line client. Every Run builds a fresh cobra command
// tree, so an App can execute several commands in a row.
type App struct {
	cfg     config.ClientConfig
	build   models.AppBuildInfo
	session *SessionStore

	// api is set by the root command before any subcommand runs.
	api     adapter.ServerAdapter
	address string

	out    io.Writer
	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, build models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		cfg:     *cfg,
		build:   build,
		session: NewSessionStore(cfg.SessionFile),
		out:     os.Stdout,
		logger:  logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "book-giveaway",
		Short:         "Book giveaway command line client",
		Long:          "Share books you no longer need and request books other people give away.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect()
		},
	}

	root.PersistentFlags().StringVar(&a.cfg.Address, "address", a.cfg.Address, "server base URL")
	root.PersistentFlags().DurationVar(&a.cfg.RequestTimeout, "timeout", a.cfg.RequestTimeout, "timeout of a single API call")

	root.AddCommand(
		a.versionCommand(),
		a.signupCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.refreshCommand(),
		a.meCommand(),
		a.booksCommand(),
		a.catalogCommand("genres", "genre", a.listGenres, a.createGenre),
		a.catalogCommand("authors", "author", a.listAuthors, a.createAuthor),
		a.requestsCommand(),
	)
	return root
}

// connect builds the adapter and restores the saved session when it was
// issued by the same server.
func (a *App) connect() error {
	api, err := adapter.NewHTTPServerAdapter(adapter.Config{
		Address:        a.cfg.Address,
		RequestTimeout: a.cfg.RequestTimeout,
	}, a.logger)
	if err != nil {
		return err
	}
	a.api = api
	a.address = a.cfg.Address

	session, err := a.session.Load()
	switch {
	case errors.Is(err, ErrNoSession):
		return nil
	case err != nil:
		a.logger.Warn().Err(err).Msg("ignoring unreadable session")
		return nil
	}

	if session.Address != a.address {
		a.logger.Debug().Str("session_address", session.Address).Msg("session belongs to another server")
		return nil
	}
	a.api.SetTokens(session.Tokens)
	return nil
}

func (a *App) saveSession() error {
	return a.session.Save(Session{Address: a.address, Tokens: a.api.Tokens()})
}

// authed runs call and, if the access token was rejected, refreshes the
// token pair once and retries.
func (a *App) authed(ctx context.Context, call func() error) error {
	if a.api.Token() == "" {
		return fmt.Errorf("%w: run the login command", ErrNoSession)
	}

	err := call()
	if !errors.Is(err, adapter.ErrUnauthorized) || a.api.Tokens().RefreshToken == "" {
		return err
	}

	a.logger.Debug().Msg("access token rejected, refreshing")
	if _, refreshErr := a.api.Refresh(ctx); refreshErr != nil {
		return fmt.Errorf("%w (session expired, log in again)", err)
	}
	if saveErr := a.saveSession(); saveErr != nil {
		a.logger.Warn().Err(saveErr).Msg("could not persist refreshed session")
	}
	return call()
}

func (a *App) print(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			server, err := a.api.Version(ctx)
			if err != nil {
				a.logger.Warn().Err(err).Msg("server version unavailable")
				server = models.NewAppBuildInfo("", "", "")
			}
			return a.print(cmd, map[string]models.AppBuildInfo{"client": a.build, "server": server})
		},
	}
}

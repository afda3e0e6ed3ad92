// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/spf13/cobra"
)

var errPasswordRequired = errors.New("password is required: use --password or --password-stdin")

// passwordFlags lets commands take the password either inline or from stdin.
type passwordFlags struct {
	password  string
	fromStdin bool
}

func (p *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.password, "password", "", "account password")
	cmd.Flags().BoolVar(&p.fromStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func (p *passwordFlags) resolve(in io.Reader) (string, error) {
	if !p.fromStdin {
		if p.password == "" {
			return "", errPasswordRequired
		}
		return p.password, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errPasswordRequired
	}
	return password, nil
}

func (a *App) signupCommand() *cobra.Command {
	var (
		req models.SignupRequest
		pw  passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := pw.resolve(cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Password = password

			user, err := a.api.Signup(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("signup: %w", err)
			}
			return a.print(cmd, user)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "unique username")
	cmd.Flags().StringVar(&req.Email, "email", "", "unique email address")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	pw.register(cmd)

	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var (
		identifier string
		pw         passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := pw.resolve(cmd.InOrStdin())
			if err != nil {
				return err
			}

			if _, err = a.api.Login(cmd.Context(), identifier, password); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if err = a.saveSession(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", identifier)
			return err
		},
	}

	cmd.Flags().StringVarP(&identifier, "user", "u", "", "username or email, depending on the server setup")
	_ = cmd.MarkFlagRequired("user")
	pw.register(cmd)

	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

func (a *App) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.api.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			if err := a.saveSession(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Session refreshed.")
			return err
		},
	}
}

func (a *App) meCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var user models.User
			err := a.authed(cmd.Context(), func() (err error) {
				user, err = a.api.Me(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}
			return a.print(cmd, user)
		},
	}
}

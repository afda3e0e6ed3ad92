// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/workers"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/spf13/cobra"
)

func (a *App) requestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"req"},
		Short:   "Request books and handle requests for yours",
	}
	cmd.AddCommand(
		a.createRequestCommand(),
		a.listRequestsCommand(),
		a.acceptRequestCommand(),
		a.withdrawRequestCommand(),
		a.watchRequestsCommand(),
	)
	return cmd
}

func (a *App) createRequestCommand() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "create BOOK_ID",
		Short: "Ask for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0])
			if err != nil {
				return err
			}

			var request models.BookRequest
			err = a.authed(cmd.Context(), func() (err error) {
				request, err = a.api.RequestBook(cmd.Context(), bookID, location)
				return err
			})
			if err != nil {
				return fmt.Errorf("request book: %w", err)
			}
			return a.print(cmd, request)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "where you want to pick the book up")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func (a *App) listRequestsCommand() *cobra.Command {
	var bookID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List my requests, or the requests for one of my books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var requests []models.BookRequest
			err := a.authed(cmd.Context(), func() (err error) {
				if bookID > 0 {
					requests, err = a.api.ListBookRequests(cmd.Context(), bookID)
				} else {
					requests, err = a.api.ListMyRequests(cmd.Context())
				}
				return err
			})
			if err != nil {
				return fmt.Errorf("list requests: %w", err)
			}
			return a.print(cmd, requests)
		},
	}

	cmd.Flags().Int64Var(&bookID, "book", 0, "list requests for this book of yours")

	return cmd
}

func (a *App) acceptRequestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accept REQUEST_ID",
		Short: "Accept a request for one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var request models.BookRequest
			err = a.authed(cmd.Context(), func() (err error) {
				request, err = a.api.AcceptRequest(cmd.Context(), id)
				return err
			})
			if err != nil {
				return fmt.Errorf("accept request: %w", err)
			}
			return a.print(cmd, request)
		},
	}
}

func (a *App) withdrawRequestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw REQUEST_ID",
		Short: "Withdraw one of your requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = a.authed(cmd.Context(), func() error {
				return a.api.WithdrawRequest(cmd.Context(), id)
			})
			if err != nil {
				return fmt.Errorf("withdraw request: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Request %d withdrawn.\n", id)
			return err
		},
	}
}

func (a *App) watchRequestsCommand() *cobra.Command {
	var (
		interval time.Duration
		untilAny bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll my requests and report when one gets accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.api.Token() == "" {
				return fmt.Errorf("%w: run the login command", ErrNoSession)
			}

			watcher := newAcceptanceWatcher(func(ctx context.Context) (requests []models.BookRequest, err error) {
				err = a.authed(ctx, func() (err error) {
					requests, err = a.api.ListMyRequests(ctx)
					return err
				})
				return requests, err
			}, func(request models.BookRequest) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Request %d for book %d was accepted, pick-up at %q.\n",
					request.ID, request.BookID, request.Location)
			}, untilAny)

			return workers.NewWorkers(
				workers.NewPeriodic("requests-watch", interval, watcher.poll, a.logger),
			).Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "poll interval")
	cmd.Flags().BoolVar(&untilAny, "until-accepted", false, "exit after the first accepted request")

	return cmd
}

// acceptanceWatcher reports every request that is accepted, once. Requests
// already accepted on the first poll are reported too.
type acceptanceWatcher struct {
	list     func(ctx context.Context) ([]models.BookRequest, error)
	report   func(models.BookRequest)
	stopOnce bool

	reported map[int64]struct{}
}

func newAcceptanceWatcher(
	list func(ctx context.Context) ([]models.BookRequest, error),
	report func(models.BookRequest),
	stopOnce bool,
) *acceptanceWatcher {
	return &acceptanceWatcher{list: list, report: report, stopOnce: stopOnce, reported: make(map[int64]struct{})}
}

func (w *acceptanceWatcher) poll(ctx context.Context) error {
	requests, err := w.list(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, request := range requests {
		if !request.Accepted {
			continue
		}
		if _, seen := w.reported[request.ID]; seen {
			continue
		}
		w.reported[request.ID] = struct{}{}
		w.report(request)
		found = true
	}

	if found && w.stopOnce {
		return workers.ErrStop
	}
	return nil
}

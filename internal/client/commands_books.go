// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/spf13/cobra"
)

var errNothingToUpdate = errors.New("nothing to update: set at least one of --title, --condition, --genre, --author")

func (a *App) booksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage books",
	}
	cmd.AddCommand(
		a.listBooksCommand(),
		a.getBookCommand(),
		a.addBookCommand(),
		a.updateBookCommand(),
		a.deleteBookCommand(),
	)
	return cmd
}

func (a *App) listBooksCommand() *cobra.Command {
	var (
		filter models.BookFilter
		mine   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if mine {
				err := a.authed(cmd.Context(), func() error {
					me, err := a.api.Me(cmd.Context())
					filter.OwnerID = me.UserID
					return err
				})
				if err != nil {
					return err
				}
			}

			books, err := a.api.ListBooks(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			return a.print(cmd, books)
		},
	}

	cmd.Flags().StringVar(&filter.Genre, "genre", "", "only books of this genre")
	cmd.Flags().StringVar(&filter.Author, "author", "", "only books by this author")
	cmd.Flags().Int64Var(&filter.OwnerID, "owner", 0, "only books owned by this user id")
	cmd.Flags().BoolVar(&mine, "mine", false, "only my books")
	cmd.MarkFlagsMutuallyExclusive("owner", "mine")

	return cmd
}

func (a *App) getBookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOK_ID",
		Short: "Show a single book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			book, err := a.api.GetBook(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get book: %w", err)
			}
			return a.print(cmd, book)
		},
	}
}

func (a *App) addBookCommand() *cobra.Command {
	var req models.BookCreateRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Offer a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var book models.Book
			err := a.authed(cmd.Context(), func() (err error) {
				book, err = a.api.CreateBook(cmd.Context(), req)
				return err
			})
			if err != nil {
				return fmt.Errorf("add book: %w", err)
			}
			return a.print(cmd, book)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "book title")
	cmd.Flags().StringVar(&req.Condition, "condition", "", "free-form condition, e.g. \"like new\"")
	cmd.Flags().StringVar(&req.Genre, "genre", "", "genre name, created if missing")
	cmd.Flags().StringVar(&req.Author, "author", "", "author name, created if missing")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("author")

	return cmd
}

func (a *App) updateBookCommand() *cobra.Command {
	var title, condition, genre, author string

	cmd := &cobra.Command{
		Use:   "update BOOK_ID",
		Short: "Change one of your books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req models.BookUpdateRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("condition") {
				req.Condition = &condition
			}
			if flags.Changed("genre") {
				req.Genre = &genre
			}
			if flags.Changed("author") {
				req.Author = &author
			}
			if req == (models.BookUpdateRequest{}) {
				return errNothingToUpdate
			}

			var book models.Book
			err = a.authed(cmd.Context(), func() (err error) {
				book, err = a.api.UpdateBook(cmd.Context(), id, req)
				return err
			})
			if err != nil {
				return fmt.Errorf("update book: %w", err)
			}
			return a.print(cmd, book)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&condition, "condition", "", "new condition")
	cmd.Flags().StringVar(&genre, "genre", "", "new genre name")
	cmd.Flags().StringVar(&author, "author", "", "new author name")

	return cmd
}

func (a *App) deleteBookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BOOK_ID",
		Short: "Withdraw one of your books together with its requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = a.authed(cmd.Context(), func() error {
				return a.api.DeleteBook(cmd.Context(), id)
			})
			if err != nil {
				return fmt.Errorf("delete book: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Book %d deleted.\n", id)
			return err
		},
	}
}

// catalogCommand builds the list/add pair shared by genres and authors.
func (a *App) catalogCommand(
	use, noun string,
	list func(ctx context.Context) (any, error),
	create func(ctx context.Context, name string) (any, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Browse and add %s", use),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: fmt.Sprintf("List known %s", use),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entries, err := list(cmd.Context())
				if err != nil {
					return fmt.Errorf("list %s: %w", use, err)
				}
				return a.print(cmd, entries)
			},
		},
		&cobra.Command{
			Use:   "add NAME",
			Short: fmt.Sprintf("Add a %s, or return the existing one", noun),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var entry any
				err := a.authed(cmd.Context(), func() (err error) {
					entry, err = create(cmd.Context(), args[0])
					return err
				})
				if err != nil {
					return fmt.Errorf("add %s: %w", noun, err)
				}
				return a.print(cmd, entry)
			},
		},
	)
	return cmd
}

func (a *App) listGenres(ctx context.Context) (any, error) {
	return a.api.ListGenres(ctx)
}

func (a *App) createGenre(ctx context.Context, name string) (any, error) {
	return a.api.CreateGenre(ctx, name)
}

func (a *App) listAuthors(ctx context.Context) (any, error) {
	return a.api.ListAuthors(ctx)
}

func (a *App) createAuthor(ctx context.Context, name string) (any, error) {
	return a.api.CreateAuthor(ctx, name)
}

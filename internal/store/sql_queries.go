// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable        = "users"
	booksTable        = "books"
	genresTable       = "genres"
	authorsTable      = "authors"
	bookRequestsTable = "book_requests"
)

var (
	userColumns        = []string{"id", "username", "email", "password_hash", "created_at"}
	bookColumns        = []string{"b.id", "b.title", "b.condition", "b.genre_id", "g.name", "b.author_id", "a.name", "b.owner_id", "b.created_at"}
	bookRequestColumns = []string{"id", "book_id", "requester_id", "location", "accepted", "created_at"}
)

// loginFieldColumns whitelists the columns a user may be looked up by.
var loginFieldColumns = map[models.LoginField]string{
	models.LoginFieldUsername: "username",
	models.LoginFieldEmail:    "email",
}

func (db *DB) buildInsertUserQuery(user models.User, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("username", "email", "password_hash", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, now).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildFindUserQuery(field models.LoginField, value string) (string, []any, error) {
	column, ok := loginFieldColumns[field]
	if !ok {
		return "", nil, fmt.Errorf("unsupported login field %q", field)
	}

	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		ToSql()
}

func (db *DB) buildUserExistsQuery(username, email string) (string, []any, error) {
	return db.builder.
		Select("1").
		From(usersTable).
		Where(sq.Or{sq.Eq{"username": username}, sq.Eq{"email": email}}).
		Limit(1).
		ToSql()
}

func (db *DB) buildInsertBookQuery(book models.Book, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(booksTable).
		Columns("title", "condition", "genre_id", "author_id", "owner_id", "created_at").
		Values(book.Title, book.Condition, book.GenreID, book.AuthorID, book.OwnerID, now).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) selectBooks() sq.SelectBuilder {
	return db.builder.
		Select(bookColumns...).
		From(booksTable + " b").
		Join(genresTable + " g ON g.id = b.genre_id").
		Join(authorsTable + " a ON a.id = b.author_id")
}

func (db *DB) buildGetBookQuery(bookID int64) (string, []any, error) {
	return db.selectBooks().
		Where(sq.Eq{"b.id": bookID}).
		ToSql()
}

func (db *DB) buildListBooksQuery(filter models.BookFilter) (string, []any, error) {
	query := db.selectBooks()

	if filter.Genre != "" {
		query = query.Where(sq.Eq{"g.name": filter.Genre})
	}
	if filter.Author != "" {
		query = query.Where(sq.Eq{"a.name": filter.Author})
	}
	if filter.OwnerID != 0 {
		query = query.Where(sq.Eq{"b.owner_id": filter.OwnerID})
	}

	return query.OrderBy("b.id").ToSql()
}

func (db *DB) buildUpdateBookQuery(update models.BookUpdate) (string, []any, error) {
	set := make(map[string]any, 4)

	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Condition != nil {
		set["condition"] = *update.Condition
	}
	if update.GenreID != nil {
		set["genre_id"] = *update.GenreID
	}
	if update.AuthorID != nil {
		set["author_id"] = *update.AuthorID
	}

	return db.builder.
		Update(booksTable).
		SetMap(set).
		Where(sq.Eq{"id": update.ID}).
		ToSql()
}

func (db *DB) buildDeleteQuery(table string, id int64) (string, []any, error) {
	return db.builder.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) buildInsertNameQuery(table, name string) (string, []any, error) {
	return db.builder.
		Insert(table).
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
}

func (db *DB) buildFindByNameQuery(table, name string) (string, []any, error) {
	return db.builder.
		Select("id", "name").
		From(table).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func (db *DB) buildListNamesQuery(table string) (string, []any, error) {
	return db.builder.
		Select("id", "name").
		From(table).
		OrderBy("name").
		ToSql()
}

func (db *DB) buildInsertRequestQuery(request models.BookRequest, now time.Time) (string, []any, error) {
	return db.builder.
		Insert(bookRequestsTable).
		Columns("book_id", "requester_id", "location", "accepted", "created_at").
		Values(request.BookID, request.RequesterID, request.Location, false, now).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectRequestsQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(bookRequestColumns...).
		From(bookRequestsTable).
		Where(where).
		OrderBy("id").
		ToSql()
}

func (db *DB) buildRequestExistsQuery(bookID, requesterID int64) (string, []any, error) {
	return db.builder.
		Select("1").
		From(bookRequestsTable).
		Where(sq.Eq{"book_id": bookID, "requester_id": requesterID}).
		Limit(1).
		ToSql()
}

func (db *DB) buildAcceptRequestQuery(requestID int64) (string, []any, error) {
	return db.builder.
		Update(bookRequestsTable).
		Set("accepted", true).
		Where(sq.Eq{"id": requestID}).
		ToSql()
}

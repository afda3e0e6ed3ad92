// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns it with the server-assigned id and
// creation time.
//
// Error handling:
//   - unique violation on username or email → [ErrUserAlreadyExists];
//   - anything else → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	query, args, err := r.db.buildInsertUserQuery(user, now)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID)
	})
	if err != nil {
		if r.db.classify(err) == UniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.CreatedAt = now
	return user, nil
}

// FindUser returns the user whose field column equals value (exact,
// case-sensitive match).
func (r *userRepository) FindUser(ctx context.Context, field models.LoginField, value string) (models.User, error) {
	query, args, err := r.db.buildFindUserQuery(field, value)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindUser", query, args)
}

// UserExists reports whether any user has the given username or email.
func (r *userRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	query, args, err := r.db.buildUserExistsQuery(username, email)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exists(ctx, r.db, query, args)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// exists runs a "SELECT 1 ... LIMIT 1" query and reports whether it
// produced a row.
func exists(ctx context.Context, db *DB, query string, args []any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return true, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/migrations"
	sq "github.com/Masterminds/squirrel"
)

// ErrorClassification is the result of [ErrorClassificator.Classify].
type ErrorClassification int

const (
	// Unclassified covers every error without a dedicated class.
	Unclassified ErrorClassification = iota

	// UniqueViolation marks a unique or primary key constraint failure.
	UniqueViolation

	// ForeignKeyViolation marks a reference to a missing parent row.
	ForeignKeyViolation

	// Retryable marks transient failures (lost connection, lock contention,
	// serialization failure) where repeating the operation may succeed.
	Retryable
)

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps a *sql.DB together with the dialect-specific pieces the
// repositories need: a squirrel builder with the right placeholder format
// and an error classifier for constraint violations.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens a connection for cfg.Driver ("postgres" or "sqlite") and
// verifies it with a ping.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:     conn,
		driver: driver,
		logger: log,
	}

	switch driver {
	case config.DriverPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

// retryDelays are the pauses before each repeated attempt of a statement
// that failed with a [Retryable] error.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}

// retry runs op and repeats it while its error classifies as [Retryable],
// at most len(retryDelays) more times. The last error is returned as is.
func (db *DB) retry(ctx context.Context, op func() error) error {
	err := op()
	for attempt, delay := range retryDelays {
		if err == nil || db.classify(err) != Retryable {
			return err
		}
		db.logger.Warn().Err(err).Str("func", "*DB.retry").Int("attempt", attempt+1).Msg("transient database error, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		err = op()
	}
	return err
}

// execRetry is ExecContext under [DB.retry].
func (db *DB) execRetry(ctx context.Context, query string, args []any) (sql.Result, error) {
	var result sql.Result
	err := db.retry(ctx, func() error {
		var err error
		result, err = db.ExecContext(ctx, query, args...)
		return err
	})
	return result, err
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return Unclassified
	}
	return db.errorClassificator.Classify(err)
}

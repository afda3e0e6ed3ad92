// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return newDB(conn, config.DriverPostgres, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{"id", "username", "email", "password_hash", "created_at"}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	user := models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}

	mock.ExpectQuery(`INSERT INTO users \(username,email,password_hash,created_at\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`).
		WithArgs("alice", "alice@x.com", "hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "alice", created.Username)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
}

func TestFindUser(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		field   models.LoginField
		value   string
		column  string
		rows    *sqlmock.Rows
		err     error
		wantErr error
	}{
		{
			name:   "by username",
			field:  models.LoginFieldUsername,
			value:  "alice",
			column: "username",
			rows:   sqlmock.NewRows(userRowColumns).AddRow(1, "alice", "alice@x.com", "hash", now),
		},
		{
			name:   "by email",
			field:  models.LoginFieldEmail,
			value:  "alice@x.com",
			column: "email",
			rows:   sqlmock.NewRows(userRowColumns).AddRow(1, "alice", "alice@x.com", "hash", now),
		},
		{
			name:    "not found",
			field:   models.LoginFieldUsername,
			value:   "ghost",
			column:  "username",
			rows:    sqlmock.NewRows(userRowColumns),
			wantErr: ErrUserNotFound,
		},
		{
			name:    "db failure",
			field:   models.LoginFieldUsername,
			value:   "alice",
			column:  "username",
			err:     errors.New("db failure"),
			wantErr: ErrScanningRow,
		},
		{
			name:    "scan error",
			field:   models.LoginFieldUsername,
			value:   "alice",
			column:  "username",
			rows:    sqlmock.NewRows([]string{"id"}).AddRow(1),
			wantErr: ErrScanningRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db, logger.Nop())

			expect := mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE ` + tt.column + ` = \$1`).
				WithArgs(tt.value)
			if tt.err != nil {
				expect.WillReturnError(tt.err)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			user, err := repo.FindUser(context.Background(), tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), user.UserID)
			assert.Equal(t, "hash", user.PasswordHash)
		})
	}
}

func TestFindUser_UnsupportedField(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	_, err := repo.FindUser(context.Background(), models.LoginField("phone"), "123")
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func TestCreateUser_RetriesTransientError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	insert := `INSERT INTO users \(username,email,password_hash,created_at\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`
	mock.ExpectQuery(insert).WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery(insert).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	created, err := repo.CreateUser(context.Background(), models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.UserID)
}

func TestUserExists(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
		want bool
	}{
		{name: "exists", rows: sqlmock.NewRows([]string{"1"}).AddRow(1), want: true},
		{name: "absent", rows: sqlmock.NewRows([]string{"1"}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db, logger.Nop())

			mock.ExpectQuery(`SELECT 1 FROM users WHERE \(username = \$1 OR email = \$2\) LIMIT 1`).
				WithArgs("alice", "alice@x.com").
				WillReturnRows(tt.rows)

			got, err := repo.UserExists(context.Background(), "alice", "alice@x.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

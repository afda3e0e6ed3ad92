// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-book-giveaway/models"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied to fields left empty by every configuration source.
// Token secrets deliberately have none.
const (
	DefaultSigningAlgorithm       = "HS256"
	DefaultAccessTokenTTLMinutes  = 30
	DefaultRefreshTokenTTLMinutes = 60 * 24 * 7
	DefaultDBDriver               = DriverSQLite
	DefaultSQLiteDSN              = "book_giveaway.db"
	DefaultHTTPAddress            = "localhost:8080"
	DefaultRequestTimeout         = 30 * time.Second
	DefaultAuthRatePerMinute      = 10
	DefaultLogLevel               = "info"
	DefaultVersion                = "dev"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var supportedAlgorithms = []string{"HS256", "HS384", "HS512"}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.SigningAlgorithm == "" {
		cfg.Auth.SigningAlgorithm = DefaultSigningAlgorithm
	}
	if cfg.Auth.AccessTokenTTLMinutes == 0 {
		cfg.Auth.AccessTokenTTLMinutes = DefaultAccessTokenTTLMinutes
	}
	if cfg.Auth.RefreshTokenTTLMinutes == 0 {
		cfg.Auth.RefreshTokenTTLMinutes = DefaultRefreshTokenTTLMinutes
	}
	if cfg.Auth.LoginField == "" {
		cfg.Auth.LoginField = string(models.LoginFieldUsername)
	}
	if cfg.Auth.PasswordHashCost == 0 {
		cfg.Auth.PasswordHashCost = bcrypt.DefaultCost
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDBDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = DefaultSQLiteDSN
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.AuthRatePerMinute == 0 {
		cfg.Server.AuthRatePerMinute = DefaultAuthRatePerMinute
	}

	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	auth := cfg.Auth

	if auth.AccessTokenSecret == "" || auth.RefreshTokenSecret == "" {
		return fmt.Errorf("%w: token secrets must be set", ErrInvalidAuthConfigs)
	}
	if auth.AccessTokenSecret == auth.RefreshTokenSecret {
		return fmt.Errorf("%w: access and refresh token secrets must differ", ErrInvalidAuthConfigs)
	}
	if !slices.Contains(supportedAlgorithms, auth.SigningAlgorithm) {
		return fmt.Errorf("%w: unsupported signing algorithm %q", ErrInvalidAuthConfigs, auth.SigningAlgorithm)
	}
	if auth.AccessTokenTTLMinutes < 0 || auth.RefreshTokenTTLMinutes < 0 {
		return fmt.Errorf("%w: token TTL must be positive", ErrInvalidAuthConfigs)
	}
	if !models.LoginField(auth.LoginField).Valid() {
		return fmt.Errorf("%w: unsupported login field %q", ErrInvalidAuthConfigs, auth.LoginField)
	}
	if auth.PasswordHashCost < bcrypt.MinCost || auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost out of range", ErrInvalidAuthConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.AuthRatePerMinute < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

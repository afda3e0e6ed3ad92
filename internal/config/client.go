// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidClientConfigs indicates a client configuration that cannot be used.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

const (
	DefaultClientAddress        = "http://" + DefaultHTTPAddress
	DefaultClientRequestTimeout = 10 * time.Second
	defaultSessionFileName      = "session.json"
	clientConfigDirName         = "book-giveaway"
)

// ClientConfig configures the command line client. Command line flags
// override these values.
type ClientConfig struct {
	// Address is the server base URL.
	// Env: BOOK_GIVEAWAY_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds every API call.
	// Env: BOOK_GIVEAWAY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SessionFile stores the token pair between invocations.
	// Env: BOOK_GIVEAWAY_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`

	// LogLevel of the client logger, which writes to stderr.
	// Env: BOOK_GIVEAWAY_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"BOOK_GIVEAWAY_"`
}

// GetClientConfig reads [ClientConfig] from the environment and fills in
// defaults for unset fields.
func GetClientConfig() (*ClientConfig, error) {
	var parsed clientEnv
	if err := parseEnv(&parsed); err != nil {
		return nil, err
	}

	cfg := parsed.Client
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ClientConfig) applyDefaults() error {
	if c.Address == "" {
		c.Address = DefaultClientAddress
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultClientRequestTimeout
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}
	if c.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("%w: resolving session file: %w", ErrInvalidClientConfigs, err)
		}
		c.SessionFile = filepath.Join(dir, clientConfigDirName, defaultSessionFileName)
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return nil
}

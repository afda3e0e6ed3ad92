// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-book-giveaway/models"
)

// ErrNoSession is returned by [SessionStore.Load] when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Session is what the client remembers between invocations.
type Session struct {
	// Address of the server the tokens were issued by.
	Address string           `json:"address"`
	Tokens  models.TokenPair `json:"tokens"`
}

// SessionStore persists a [Session] as a JSON file readable only by the
// current user.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("decoding session file: %w", err)
	}
	if session.Tokens.AccessToken == "" {
		return Session{}, ErrNoSession
	}
	return session, nil
}

// Save replaces the session file through a temporary file in the same
// directory, so the result is always mode 0600 and never half written.
func (s *SessionStore) Save(session Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("restricting session file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int

	dummyOnce   sync.Once
	dummyDigest string
}

// NewPasswordHasher returns a hasher using the given bcrypt work factor.
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt digest of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest is
// simply a mismatch.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// VerifyDummy burns the same CPU as a real [PasswordHasher.Verify] and always
// reports false. Used when the user being authenticated does not exist.
func (h *PasswordHasher) VerifyDummy(password string) bool {
	h.dummyOnce.Do(func() {
		digest, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), h.cost)
		if err == nil {
			h.dummyDigest = string(digest)
		}
	})
	h.Verify(password, h.dummyDigest)
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded content of a token.
type Claims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies HMAC JWTs with one secret and one
// algorithm. Access and refresh tokens use two separate codecs.
//
// A TokenCodec is immutable after construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	now    func() time.Time
}

// TokenCodecOption customises a [TokenCodec].
type TokenCodecOption func(*TokenCodec)

// WithIssuer sets the "iss" claim written on encode and required on decode.
func WithIssuer(issuer string) TokenCodecOption {
	return func(c *TokenCodec) {
		c.issuer = issuer
	}
}

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec for the given secret and algorithm name.
// Only the HMAC family (HS256, HS384, HS512) is accepted.
//
// Example usage:
//
//	access, err := utils.NewTokenCodec(cfg.Auth.AccessTokenSecret, "HS256")
func NewTokenCodec(secret, algorithm string, opts ...TokenCodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidCodecParams)
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidCodecParams, algorithm)
	}

	c := &TokenCodec{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Encode returns a signed token with sub = subject and exp = now + ttl.
func (c *TokenCodec) Encode(subject string, ttl time.Duration) (string, error) {
	if subject == "" || ttl <= 0 {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := c.now()
	claims := &jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// Decode verifies token and returns its claims.
//
// The returned error wraps exactly one of [ErrTokenInvalidSignature],
// [ErrTokenMalformed] or [ErrTokenExpired]. A token is expired once
// exp <= now, compared at seconds resolution.
func (c *TokenCodec) Decode(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, classifyJWTError(err)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: empty subject", ErrTokenMalformed)
	}

	decoded := Claims{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}

	return decoded, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
	"golang.org/x/crypto/bcrypt"
)

// tokenCodec is the part of [utils.TokenCodec] the auth service depends on.
type tokenCodec interface {
	Encode(subject string, ttl time.Duration) (string, error)
	Decode(token string) (utils.Claims, error)
}

// authService is the concrete implementation of AuthService.
// All state is read-only after construction.
type authService struct {
	userRepository store.UserRepository
	hasher         *utils.PasswordHasher

	// accessCodec and refreshCodec are built from distinct secrets, so a
	// token issued by one is never accepted by the other.
	accessCodec  tokenCodec
	refreshCodec tokenCodec
	accessTTL    time.Duration
	refreshTTL   time.Duration

	// loginField is both the lookup column on login and the token subject.
	loginField models.LoginField

	logger *logger.Logger
}

// NewAuthService builds the token codecs and the password hasher from cfg.
// It fails when a codec cannot be constructed (empty secret or an
// unsupported algorithm).
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) (AuthService, error) {
	accessCodec, err := utils.NewTokenCodec(cfg.AccessTokenSecret, cfg.SigningAlgorithm, utils.WithIssuer(cfg.TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("access token codec: %w", err)
	}
	refreshCodec, err := utils.NewTokenCodec(cfg.RefreshTokenSecret, cfg.SigningAlgorithm, utils.WithIssuer(cfg.TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("refresh token codec: %w", err)
	}

	return newAuthService(
		userRepository,
		utils.NewPasswordHasher(cfg.PasswordHashCost),
		accessCodec, refreshCodec,
		cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(),
		models.LoginField(cfg.LoginField),
		logger,
	), nil
}

func newAuthService(
	userRepository store.UserRepository,
	hasher *utils.PasswordHasher,
	accessCodec, refreshCodec tokenCodec,
	accessTTL, refreshTTL time.Duration,
	loginField models.LoginField,
	logger *logger.Logger,
) *authService {
	if !loginField.Valid() {
		loginField = models.LoginFieldUsername
	}
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		accessCodec:    accessCodec,
		refreshCodec:   refreshCodec,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
		loginField:     loginField,
		logger:         logger,
	}
}

// RegisterUser creates a new account with a bcrypt-hashed password.
//
// Returns:
//   - ErrInvalidDataProvided if any field is empty or the password is
//     longer than 72 bytes.
//   - ErrDuplicateUser if the username or email is taken. The existing
//     record is left untouched.
func (a *authService) RegisterUser(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || email == "" || password == "" {
		log.Debug().Str("func", "authService.RegisterUser").Msg("empty signup field")
		return models.User{}, ErrInvalidDataProvided
	}

	exists, err := a.userRepository.UserExists(ctx, username, email)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("user existence check failed")
		return models.User{}, fmt.Errorf("user existence check: %w", err)
	}
	if exists {
		return models.User{}, ErrDuplicateUser
	}

	digest, err := a.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		log.Debug().Str("func", "authService.RegisterUser").Int("bytes", len(password)).Msg("password too long")
		return models.User{}, ErrInvalidDataProvided
	}
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	})
	if errors.Is(err, store.ErrUserAlreadyExists) {
		// lost a race with a concurrent signup
		return models.User{}, ErrDuplicateUser
	}
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", created.UserID).Msg("user registered")
	return created, nil
}

// Login verifies the password of the user identified by identifier and
// issues a token pair. An unknown identifier and a wrong password both
// return ErrInvalidCredentials after a bcrypt comparison of equal cost.
func (a *authService) Login(ctx context.Context, identifier, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUser(ctx, a.loginField, identifier)
	if errors.Is(err, store.ErrUserNotFound) {
		a.hasher.VerifyDummy(password)
		log.Debug().Str("func", "authService.Login").Msg("login failed: unknown identifier")
		return models.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user lookup failed")
		return models.TokenPair{}, fmt.Errorf("user lookup: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		log.Debug().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("login failed: wrong password")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	return a.issuePair(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	user, err := a.resolve(ctx, a.refreshCodec, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	return a.issuePair(ctx, user)
}

// Authenticate decodes an access token and returns the user its subject
// names.
//
// Returns:
//   - ErrInvalidToken (wrapping the decode reason) for bad, expired or
//     foreign tokens.
//   - ErrUnknownSubject if the subject no longer exists.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	return a.resolve(ctx, a.accessCodec, accessToken)
}

func (a *authService) resolve(ctx context.Context, codec tokenCodec, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	claims, err := codec.Decode(token)
	if err != nil {
		log.Debug().Err(err).Str("func", "authService.resolve").Msg("token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := a.userRepository.FindUser(ctx, a.loginField, claims.Subject)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "authService.resolve").Msg("token subject not found")
		return models.User{}, ErrUnknownSubject
	}
	if err != nil {
		log.Err(err).Str("func", "authService.resolve").Msg("subject lookup failed")
		return models.User{}, fmt.Errorf("subject lookup: %w", err)
	}

	return user, nil
}

func (a *authService) issuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	log := logger.FromContext(ctx)
	subject := user.Identifier(a.loginField)

	access, err := a.accessCodec.Encode(subject, a.accessTTL)
	if err != nil {
		log.Err(err).Str("func", "authService.issuePair").Msg("access token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	refresh, err := a.refreshCodec.Encode(subject, a.refreshTTL)
	if err != nil {
		log.Err(err).Str("func", "authService.issuePair").Msg("refresh token creation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  access,
		TokenType:    models.TokenTypeBearer,
		RefreshToken: refresh,
	}, nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"passvault/internal/common"
	"passvault/internal/server/auth"
	"passvault/internal/server/config"
)

// Service implements account signup, credential verification and bearer
// token issuance. All vault operations require an identity produced by
// Verify.
type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates a new account and returns a freshly issued token bound to
// it. The password is stored only as a bcrypt hash with a per-record salt.
func (s *Service) Signup(ctx context.Context, email string, password string) (string, error) {

	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password required", common.ErrValidation)
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrConflict
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("error checking for existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repo.Create(ctx, &Account{Email: email, PasswordHash: hash})
	if err != nil {
		// Two concurrent signups can pass the existence check; the unique
		// index decides the winner.
		if errors.Is(err, common.ErrConflict) {
			return "", common.ErrConflict
		}
		return "", fmt.Errorf("error creating account: %w", err)
	}

	return s.issueToken(account)
}

// Login verifies the credentials and issues a new token. A missing account
// and a failed hash comparison are indistinguishable to the caller; the
// plaintext password is never compared directly.
func (s *Service) Login(ctx context.Context, email string, password string) (string, error) {

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrUnauthorized
	}

	return s.issueToken(account)
}

// Verify validates the token signature and expiry and returns the embedded
// identity. Every failure mode (missing, malformed, forged, expired) folds
// into ErrUnauthorized so the response never reveals which occurred.
func (s *Service) Verify(tokenString string) (auth.Identity, error) {
	if tokenString == "" {
		return auth.Identity{}, common.ErrUnauthorized
	}

	identity, err := auth.GetIdentityFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return auth.Identity{}, common.ErrUnauthorized
	}

	return identity, nil
}

func (s *Service) issueToken(account *Account) (string, error) {
	token, err := auth.GenerateToken(account.ID, account.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

// Package service provides the business logic of the firmware API:
// console authentication, the device catalog and firmware releases.
// Persistence is delegated to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// FindByMail returns the account registered under mail or ErrNotFound.
	FindByMail(ctx context.Context, mail string) (models.Account, error)
	// FindByID returns the account with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int) (models.Account, error)
	// UpdatePassword stores a new password hash and the time of the change.
	UpdatePassword(ctx context.Context, id int, hash string, at time.Time) error
}

// AuthService logs console users in and guards the authenticated API.
type AuthService struct {
	repo   UserRepository
	tokens *Tokens
	cost   int
	now    func() time.Time
}

// NewAuthService constructs an AuthService over repo issuing tokens with
// tokens.
func NewAuthService(repo UserRepository, tokens *Tokens) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost, now: time.Now}
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, in models.Login) (models.Token, error) {
	acc, err := s.repo.FindByMail(ctx, in.Email)
	if errors.Is(err, ErrNotFound) {
		return models.Token{}, ErrBadCredentials
	}
	if err != nil {
		return models.Token{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)) != nil {
		return models.Token{}, ErrBadCredentials
	}

	user := acc.Profile()
	token, err := s.tokens.Issue(user)
	if err != nil {
		return models.Token{}, err
	}
	return models.Token{AccessToken: token, User: user}, nil
}

// ChangePassword replaces the password of user. Tokens issued before the
// change stop being accepted.
func (s *AuthService) ChangePassword(ctx context.Context, user models.User, in models.PasswordUpdate) error {
	acc, err := s.repo.FindByID(ctx, user.ID)
	if errors.Is(err, ErrNotFound) {
		return ErrBadCredentials
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.OldPass)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPass), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// Tickers have second precision, so the stored time must move forward
	// by at least one second.
	at := s.now().UTC().Truncate(time.Second)
	if !at.After(acc.UpdateTime) {
		at = acc.UpdateTime.UTC().Truncate(time.Second).Add(time.Second)
	}
	return s.repo.UpdatePassword(ctx, acc.ID, string(hash), at)
}

// Authenticate resolves a raw access token to the current user profile.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (models.User, error) {
	claimed, err := s.tokens.Parse(raw)
	if err != nil {
		return models.User{}, err
	}

	acc, err := s.repo.FindByID(ctx, claimed.ID)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrTokenInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	user := acc.Profile()
	if user.Ticker != claimed.Ticker {
		return models.User{}, ErrTokenInvalid
	}
	return user, nil
}

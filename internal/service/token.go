package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// DefaultTokenTTL is how long an access token stays valid.
const DefaultTokenTTL = time.Hour

// TokenClaims is the payload of an access token.
type TokenClaims struct {
	User      models.User `json:"user"`
	IsRefresh bool        `json:"is_refresh"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret. A non-positive ttl falls
// back to DefaultTokenTTL.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an access token for user.
func (t *Tokens) Issue(user models.User) (string, error) {
	claims := TokenClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(t.now().Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns the user it was issued for. Every failure,
// including refresh tokens, is reported as ErrTokenInvalid.
func (t *Tokens) Parse(raw string) (models.User, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.IsRefresh {
		return models.User{}, ErrTokenInvalid
	}
	return claims.User, nil
}

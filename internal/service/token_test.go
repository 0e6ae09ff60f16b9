package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

func fixedNow(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", 0)
	if tokens.ttl != DefaultTokenTTL {
		t.Fatalf("ttl = %v; want default", tokens.ttl)
	}
	user := models.User{ID: 3, Name: "root", Mail: "root@example.com", Ticker: 1700000000}

	raw, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	got, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != user {
		t.Errorf("Parse = %+v; want %+v", got, user)
	}
}

func TestTokens_ParseRejects(t *testing.T) {
	issuedAt := time.Unix(1700000000, 0)
	signer := NewTokens("secret", time.Hour)
	signer.now = fixedNow(issuedAt)
	valid, err := signer.Issue(models.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		User:             models.User{ID: 1},
		IsRefresh:        true,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign refresh token: %v", err)
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign HS512 token: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{User: models.User{ID: 1}}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		now    time.Time
		raw    string
	}{
		{"expired", "secret", issuedAt.Add(2 * time.Hour), valid},
		{"wrong secret", "other", issuedAt, valid},
		{"refresh token", "secret", issuedAt, refresh},
		{"unexpected algorithm", "secret", issuedAt, hs512},
		{"missing expiry", "secret", issuedAt, noExp},
		{"garbage", "secret", issuedAt, "not-a-token"},
		{"empty", "secret", issuedAt, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewTokens(tt.secret, time.Hour)
			verifier.now = fixedNow(tt.now)
			_, err := verifier.Parse(tt.raw)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Parse error = %v; want ErrTokenInvalid", err)
			}
		})
	}
}

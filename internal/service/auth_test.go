package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

type mockUserRepo struct {
	FindByMailFunc     func(ctx context.Context, mail string) (models.Account, error)
	FindByIDFunc       func(ctx context.Context, id int) (models.Account, error)
	UpdatePasswordFunc func(ctx context.Context, id int, hash string, at time.Time) error
}

func (m *mockUserRepo) FindByMail(ctx context.Context, mail string) (models.Account, error) {
	return m.FindByMailFunc(ctx, mail)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id int) (models.Account, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int, hash string, at time.Time) error {
	return m.UpdatePasswordFunc(ctx, id, hash, at)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func testAccount(t *testing.T) models.Account {
	return models.Account{
		ID:           7,
		Name:         "admin",
		Mail:         "admin@example.com",
		PasswordHash: hashPassword(t, "s3cret"),
		UpdateTime:   time.Unix(1700000000, 0).UTC(),
	}
}

func newTestAuthService(repo UserRepository) *AuthService {
	svc := NewAuthService(repo, NewTokens("test-secret", time.Hour))
	svc.cost = bcrypt.MinCost
	return svc
}

func TestLogin_Success(t *testing.T) {
	acc := testAccount(t)
	repo := &mockUserRepo{
		FindByMailFunc: func(ctx context.Context, mail string) (models.Account, error) {
			if mail != acc.Mail {
				t.Errorf("FindByMail received mail = %q; want %q", mail, acc.Mail)
			}
			return acc, nil
		},
	}
	svc := newTestAuthService(repo)

	tok, err := svc.Login(context.Background(), models.Login{Email: acc.Mail, Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if tok.User != acc.Profile() {
		t.Errorf("Login user = %+v; want %+v", tok.User, acc.Profile())
	}
	claimed, err := svc.tokens.Parse(tok.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claimed.Ticker != acc.UpdateTime.Unix() {
		t.Errorf("token ticker = %d; want %d", claimed.Ticker, acc.UpdateTime.Unix())
	}
}

func TestLogin_Failures(t *testing.T) {
	acc := testAccount(t)
	dbErr := errors.New("db down")
	tests := []struct {
		name     string
		password string
		find     func(ctx context.Context, mail string) (models.Account, error)
		want     error
	}{
		{
			name:     "unknown mail",
			password: "s3cret",
			find: func(context.Context, string) (models.Account, error) {
				return models.Account{}, ErrNotFound
			},
			want: ErrBadCredentials,
		},
		{
			name:     "wrong password",
			password: "guess",
			find: func(context.Context, string) (models.Account, error) {
				return acc, nil
			},
			want: ErrBadCredentials,
		},
		{
			name:     "repository error",
			password: "s3cret",
			find: func(context.Context, string) (models.Account, error) {
				return models.Account{}, dbErr
			},
			want: dbErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepo{FindByMailFunc: tt.find})
			_, err := svc.Login(context.Background(), models.Login{Email: acc.Mail, Password: tt.password})
			if !errors.Is(err, tt.want) {
				t.Errorf("Login error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestChangePassword_Success(t *testing.T) {
	acc := testAccount(t)
	var (
		gotID   int
		gotHash string
		gotAt   time.Time
	)
	repo := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id int) (models.Account, error) {
			return acc, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id int, hash string, at time.Time) error {
			gotID, gotHash, gotAt = id, hash, at
			return nil
		},
	}
	svc := newTestAuthService(repo)
	svc.now = fixedNow(time.Unix(1700000500, 250))

	err := svc.ChangePassword(context.Background(), acc.Profile(), models.PasswordUpdate{OldPass: "s3cret", NewPass: "n3w"})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if gotID != acc.ID {
		t.Errorf("UpdatePassword id = %d; want %d", gotID, acc.ID)
	}
	if bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("n3w")) != nil {
		t.Error("stored hash does not match the new password")
	}
	if gotAt.Unix() != 1700000500 || gotAt.Nanosecond() != 0 {
		t.Errorf("update time = %v; want whole second 1700000500", gotAt)
	}
}

func TestChangePassword_SameSecondStillMovesTicker(t *testing.T) {
	acc := testAccount(t)
	var gotAt time.Time
	repo := &mockUserRepo{
		FindByIDFunc: func(context.Context, int) (models.Account, error) { return acc, nil },
		UpdatePasswordFunc: func(ctx context.Context, id int, hash string, at time.Time) error {
			gotAt = at
			return nil
		},
	}
	svc := newTestAuthService(repo)
	svc.now = fixedNow(acc.UpdateTime.Add(300 * time.Millisecond))

	if err := svc.ChangePassword(context.Background(), acc.Profile(), models.PasswordUpdate{OldPass: "s3cret", NewPass: "x"}); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if gotAt.Unix() <= acc.UpdateTime.Unix() {
		t.Errorf("update time %v did not move past %v", gotAt, acc.UpdateTime)
	}
}

func TestChangePassword_Failures(t *testing.T) {
	acc := testAccount(t)
	tests := []struct {
		name string
		old  string
		find func(context.Context, int) (models.Account, error)
		want error
	}{
		{"wrong old password", "nope", func(context.Context, int) (models.Account, error) { return acc, nil }, ErrWrongPassword},
		{"user gone", "s3cret", func(context.Context, int) (models.Account, error) { return models.Account{}, ErrNotFound }, ErrBadCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				FindByIDFunc: tt.find,
				UpdatePasswordFunc: func(context.Context, int, string, time.Time) error {
					t.Fatal("UpdatePassword must not be called")
					return nil
				},
			}
			err := newTestAuthService(repo).ChangePassword(context.Background(), acc.Profile(), models.PasswordUpdate{OldPass: tt.old, NewPass: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("ChangePassword error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	acc := testAccount(t)
	changed := acc
	changed.UpdateTime = acc.UpdateTime.Add(time.Minute)
	dbErr := errors.New("db down")

	tests := []struct {
		name    string
		stored  models.Account
		findErr error
		token   func(svc *AuthService) string
		want    error
	}{
		{
			name:   "valid",
			stored: acc,
			token: func(svc *AuthService) string {
				raw, _ := svc.tokens.Issue(acc.Profile())
				return raw
			},
		},
		{
			name:   "password changed since issue",
			stored: changed,
			token: func(svc *AuthService) string {
				raw, _ := svc.tokens.Issue(acc.Profile())
				return raw
			},
			want: ErrTokenInvalid,
		},
		{
			name:    "user deleted",
			findErr: ErrNotFound,
			token: func(svc *AuthService) string {
				raw, _ := svc.tokens.Issue(acc.Profile())
				return raw
			},
			want: ErrTokenInvalid,
		},
		{
			name:    "repository error",
			findErr: dbErr,
			token: func(svc *AuthService) string {
				raw, _ := svc.tokens.Issue(acc.Profile())
				return raw
			},
			want: dbErr,
		},
		{
			name:  "malformed",
			token: func(*AuthService) string { return "abc" },
			want:  ErrTokenInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				FindByIDFunc: func(ctx context.Context, id int) (models.Account, error) {
					if id != acc.ID {
						t.Errorf("FindByID received id = %d; want %d", id, acc.ID)
					}
					return tt.stored, tt.findErr
				},
			}
			svc := newTestAuthService(repo)
			user, err := svc.Authenticate(context.Background(), tt.token(svc))
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Errorf("Authenticate error = %v; want %v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate returned error: %v", err)
			}
			if user != acc.Profile() {
				t.Errorf("Authenticate = %+v; want %+v", user, acc.Profile())
			}
		})
	}
}

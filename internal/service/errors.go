package service

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses.
var (
	// ErrTokenInvalid means the token is malformed, expired, a refresh token,
	// or was issued before the last password change.
	ErrTokenInvalid = errors.New("token expired")
	// ErrBadCredentials means the mail is unknown or the password is wrong.
	ErrBadCredentials = errors.New("mail or password incorrect")
	// ErrWrongPassword means the old password of a password change is wrong.
	ErrWrongPassword = errors.New("old password incorrect")
	// ErrNotFound means no record matched.
	ErrNotFound = errors.New("data not found")
	// ErrConflict means a unique catalog value is already taken.
	ErrConflict = errors.New("data already exists")
)

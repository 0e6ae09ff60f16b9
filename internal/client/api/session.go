package api

import (
	"sync"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// Session holds the bearer token and the last fetched catalog snapshot of
// one console user. The zero value is an empty, usable session.
type Session struct {
	mu    sync.RWMutex
	token string
	info  *models.BaseInfo
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// UpdateToken replaces the stored token.
func (s *Session) UpdateToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the stored token, or "" before the first login.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetBaseInfo replaces the stored catalog snapshot.
func (s *Session) SetBaseInfo(info models.BaseInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = &info
}

// BaseInfo returns the stored snapshot and whether one has been set.
func (s *Session) BaseInfo() (models.BaseInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return models.BaseInfo{}, false
	}
	return *s.info, true
}

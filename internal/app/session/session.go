// Package session holds the explicit authenticated-session state: who, if
// anyone, is currently logged in on this device. The Session value is
// created once at startup and threaded through the navigator and screens;
// it is mutated only by the Gate and the auth flow outcomes, never read
// from an ambient global.
package session

import (
	"sync"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
)

// Session is the in-memory view of the persisted session marker, enriched
// with the resolved user record after a gate check or login.
type Session struct {
	mu   sync.RWMutex
	user *models.UserRecord
}

func New() *Session {
	return &Session{}
}

// Set records rec as the current user.
func (s *Session) Set(rec *models.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = rec
}

// Clear forgets the current user.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Active reports whether a user is currently logged in.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// NationalID returns the current user's national ID, or "" when logged out.
func (s *Session) NationalID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.NationalID
}

// User returns a copy of the current user record, or nil when logged out.
func (s *Session) User() *models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	rec := *s.user
	return &rec
}

// Package auth supplies the identity boundary: bcrypt credential checks and
// opaque bearer session tokens. The core services never read ambient
// identity; the resolved actor is passed to them explicitly per call.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type session struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// Sessions issues and resolves bearer tokens. Tokens live in process;
// restarting the server signs everyone out.
type Sessions struct {
	mu       sync.RWMutex
	ttl      time.Duration
	logger   zerolog.Logger
	sessions map[string]session
}

// NewSessions creates a session manager with the given token lifetime.
func NewSessions(ttl time.Duration, logger zerolog.Logger) *Sessions {
	return &Sessions{
		ttl:      ttl,
		logger:   logger.With().Str("component", "sessions").Logger(),
		sessions: make(map[string]session),
	}
}

// Issue creates a new token bound to the given user.
func (s *Sessions) Issue(userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[token] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	s.logger.Debug().Str("user_id", userID.String()).Msg("session issued")
	return token, nil
}

// Resolve maps a token to the user it was issued for. Expired tokens are
// dropped on access.
func (s *Sessions) Resolve(token string) (uuid.UUID, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return uuid.Nil, false
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return uuid.Nil, false
	}
	return sess.userID, true
}

// Revoke invalidates a single token.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// RevokeUser invalidates every token issued to the given user, used when the
// account is deleted.
func (s *Sessions) RevokeUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, sess := range s.sessions {
		if sess.userID == userID {
			delete(s.sessions, token)
		}
	}
}

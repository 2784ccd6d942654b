package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "secret123"))
}

func TestSessionsIssueAndResolve(t *testing.T) {
	s := NewSessions(time.Hour, zerolog.Nop())
	userID := uuid.New()

	token, err := s.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, ok := s.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, userID, resolved)

	_, ok = s.Resolve("no-such-token")
	assert.False(t, ok)
}

func TestSessionsTokensAreUnique(t *testing.T) {
	s := NewSessions(time.Hour, zerolog.Nop())
	userID := uuid.New()

	a, err := s.Issue(userID)
	require.NoError(t, err)
	b, err := s.Issue(userID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSessionsExpiry(t *testing.T) {
	s := NewSessions(time.Millisecond, zerolog.Nop())

	token, err := s.Issue(uuid.New())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, ok := s.Resolve(token)
	assert.False(t, ok)
}

func TestSessionsRevoke(t *testing.T) {
	s := NewSessions(time.Hour, zerolog.Nop())
	userID := uuid.New()

	token, err := s.Issue(userID)
	require.NoError(t, err)

	s.Revoke(token)
	_, ok := s.Resolve(token)
	assert.False(t, ok)
}

func TestSessionsRevokeUser(t *testing.T) {
	s := NewSessions(time.Hour, zerolog.Nop())
	target := uuid.New()
	other := uuid.New()

	t1, err := s.Issue(target)
	require.NoError(t, err)
	t2, err := s.Issue(target)
	require.NoError(t, err)
	t3, err := s.Issue(other)
	require.NoError(t, err)

	s.RevokeUser(target)

	_, ok := s.Resolve(t1)
	assert.False(t, ok)
	_, ok = s.Resolve(t2)
	assert.False(t, ok)
	_, ok = s.Resolve(t3)
	assert.True(t, ok)
}

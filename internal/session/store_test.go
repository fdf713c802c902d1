package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour)

	sess, err := s.Create("u1")
	require.NoError(t, err)
	assert.Len(t, sess.Token, tokenBytes*2)
	assert.Equal(t, "u1", sess.UserID)

	got, ok := s.Get(sess.Token)
	require.True(t, ok)
	assert.Equal(t, sess.UserID, got.UserID)

	_, ok = s.Get("not-a-token")
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	s := NewStore(time.Hour)

	a, err := s.Create("u1")
	require.NoError(t, err)
	b, err := s.Create("u1")
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.Equal(t, 2, s.Len(), "a second login must not replace the first session")
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewStore(time.Hour)

	sess, err := s.Create("u1")
	require.NoError(t, err)

	s.Delete(sess.Token)
	_, ok := s.Get(sess.Token)
	assert.False(t, ok)

	// Deleting again must not panic or error.
	s.Delete(sess.Token)
}

func TestExpiredSessionIsAbsent(t *testing.T) {
	s := NewStore(time.Minute)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	sess, err := s.Create("u1")
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, ok := s.Get(sess.Token)
	assert.True(t, ok, "session must still be live before its TTL")

	now = now.Add(time.Minute)
	_, ok = s.Get(sess.Token)
	assert.False(t, ok, "session must be gone after its TTL")
	assert.Equal(t, 0, s.Len(), "expired session must be evicted on access")
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	s := NewStore(time.Minute)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, err := s.Create("u1")
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	fresh, err := s.Create("u1")
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	removed := s.sweep()
	assert.Equal(t, 1, removed)

	_, ok := s.Get(old.Token)
	assert.False(t, ok)
	_, ok = s.Get(fresh.Token)
	assert.True(t, ok)
}

// Package session holds server-side login sessions in memory.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// tokenBytes is the entropy of an opaque session token before hex encoding.
const tokenBytes = 32

// Session binds an opaque token to an authenticated user id.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is an in-memory session store. Sessions vanish on process restart,
// matching the record store's lifecycle.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a Store whose sessions expire after ttl of wall time.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create establishes a new session for the given user id and returns it.
// The token is opaque random data; it carries no claims.
func (s *Store) Create(userID string) (Session, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Session{}, fmt.Errorf("generate session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := Session{
		Token:     hex.EncodeToString(buf),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.Token] = sess
	return sess, nil
}

// Get resolves a token to its session. Expired sessions are treated as
// absent and evicted on the spot.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if !sess.ExpiresAt.After(s.now()) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Delete destroys a session. Deleting an unknown token is not an error,
// so logout is idempotent.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of live sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartExpiredCleaner sweeps expired sessions with interval until ctx is done.
func (s *Store) StartExpiredCleaner(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.sweep(); removed > 0 {
					log.Info("cleaned expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func (s *Store) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Package session stores refresh tokens between logins. Tokens are opaque
// random strings mapped to the owning user id and expire after a TTL; a
// token is single-use and gets replaced on every refresh.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTokenNotFound reports an unknown or expired refresh token.
var ErrTokenNotFound = errors.New("refresh token not found")

// Store persists refresh tokens.
type Store interface {
	// Save associates a refresh token with a user for the store's TTL.
	Save(ctx context.Context, token, userID string) error
	// Lookup resolves a token to its user id, or ErrTokenNotFound.
	Lookup(ctx context.Context, token string) (string, error)
	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
	// Rotate atomically replaces oldToken with newToken for the same user.
	// Returns the user id, or ErrTokenNotFound when oldToken is unknown.
	Rotate(ctx context.Context, oldToken, newToken string) (string, error)
}

// MemoryStore keeps refresh tokens in process memory. It serves development
// and tests; restarts log everyone out.
type MemoryStore struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store with the given token TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(ctx context.Context, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Lookup(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return "", ErrTokenNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryStore) Rotate(ctx context.Context, oldToken, newToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[oldToken]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, oldToken)
		return "", ErrTokenNotFound
	}
	delete(s.entries, oldToken)
	s.entries[newToken] = memoryEntry{userID: entry.userID, expiresAt: time.Now().Add(s.ttl)}
	return entry.userID, nil
}

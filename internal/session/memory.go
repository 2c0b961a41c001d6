package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory. They are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose tokens expire after ttl. A ttl of zero
// keeps tokens until the process exits.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &MemoryStore{cache: cache.New(ttl, cleanupInterval)}
}

// Create mints and stores a token.
func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	s.cache.SetDefault(token, userID)
	return token, nil
}

// Lookup resolves a token to its user id.
func (s *MemoryStore) Lookup(_ context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	v, found := s.cache.Get(token)
	if !found {
		return 0, false, nil
	}
	userID, ok := v.(uint)
	return userID, ok, nil
}

// Revoke forgets a token.
func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}

// Count may include expired tokens not yet swept by the janitor.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	return s.cache.ItemCount(), nil
}

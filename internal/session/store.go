// Package session maps opaque bearer tokens to user ids.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"gwp-backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// TokenBytes is the entropy of a token; the hex form is twice as long.
const TokenBytes = 32

// Store is safe for concurrent use.
type Store interface {
	// Create mints a token for userID and stores it.
	Create(ctx context.Context, userID uint) (string, error)
	// Lookup resolves a token. ok is false for unknown or expired tokens.
	Lookup(ctx context.Context, token string) (userID uint, ok bool, err error)
	// Revoke forgets a token. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
}

// NewToken returns 256 random bits as lowercase hex.
func NewToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// New builds the configured backend.
func New(cfg *config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL, cfg.CleanupInterval), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		return NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.TTL), nil
	}
	return nil, fmt.Errorf("unsupported session backend %q", cfg.Backend)
}

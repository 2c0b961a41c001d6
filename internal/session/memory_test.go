package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwp-backend/internal/config"
)

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, TokenBytes*2)
	assert.Regexp(t, `^[0-9a-f]+$`, a)
	assert.NotEqual(t, a, b)
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	userID, ok, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	_, ok, err = store.Lookup(ctx, token+"x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = store.Lookup(ctx, "")
	assert.False(t, ok)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Revoke(ctx, token))
	_, ok, _ = store.Lookup(ctx, token)
	assert.False(t, ok)

	// unknown token
	require.NoError(t, store.Revoke(ctx, "nope"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(20*time.Millisecond, time.Minute)

	token, err := store.Create(ctx, 1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, ok, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreConcurrentUse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour, time.Minute)

	var wg sync.WaitGroup
	tokens := make([]string, 50)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := store.Create(ctx, uint(i+1))
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	for i, tok := range tokens {
		userID, ok, err := store.Lookup(ctx, tok)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint(i+1), userID)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	_, err := New(&config.SessionConfig{Backend: "memcached"})
	assert.Error(t, err)

	store, err := New(&config.SessionConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

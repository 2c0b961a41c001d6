// Package limiter caps how many operations one key may run at the same time.
package limiter

import (
	"context"
	"errors"
	"sync"
)

// ErrLimitReached is returned by Acquire when every slot of the key is taken.
var ErrLimitReached = errors.New("limiter: concurrency limit reached")

// Limiter hands out a bounded number of slots per key. Every successful
// Acquire must be paired with one Release.
type Limiter interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
}

// LocalLimiter keeps the counters in process memory.
type LocalLimiter struct {
	mu            sync.Mutex
	maxConcurrent int
	counts        map[string]int
}

// NewLocalLimiter creates a LocalLimiter with maxConcurrent slots per key.
func NewLocalLimiter(maxConcurrent int) *LocalLimiter {
	return &LocalLimiter{
		maxConcurrent: maxConcurrent,
		counts:        make(map[string]int),
	}
}

// Acquire takes a slot of key.
func (l *LocalLimiter) Acquire(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[key] >= l.maxConcurrent {
		return ErrLimitReached
	}
	l.counts[key]++
	return nil
}

// Release returns a slot of key.
func (l *LocalLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts[key] <= 1 {
		delete(l.counts, key)
		return nil
	}
	l.counts[key]--
	return nil
}

// Current returns the slots of key in use.
func (l *LocalLimiter) Current(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[key]
}

// Package budget persists the daily completion token counter in the shared
// store so every replica draws from the same budget.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bridgeyou/search/internal/db"
)

// keyPrefix namespaces the per-day counters.
const keyPrefix = "bridgeyou:completion_tokens:"

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps one INCRBY counter per UTC day.
type Store struct {
	store store
	ttl   time.Duration
}

// New creates a budget store. ttl bounds how long a day's counter is kept
// (48h leaves room for clock skew between replicas).
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// Key returns the counter key for the UTC day containing t.
func Key(t time.Time) string {
	return keyPrefix + t.UTC().Format("2006-01-02")
}

// Add increments the day's counter and returns the total across replicas.
func (s *Store) Add(ctx context.Context, day time.Time, tokens int64) (int64, error) {
	key := Key(day)
	total, err := s.store.IncrBy(ctx, key, tokens)
	if err != nil {
		return 0, fmt.Errorf("budget INCRBY %s: %w", key, err)
	}

	// NX keeps the first expiry; later increments do not push it out.
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return total, fmt.Errorf("budget EXPIRE %s: %w", key, err)
	}
	return total, nil
}

// Load returns the day's total. A missing key counts as zero.
func (s *Store) Load(ctx context.Context, day time.Time) (int64, error) {
	key := Key(day)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("budget GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget GET %s parse: %w", key, err)
	}
	return val, nil
}

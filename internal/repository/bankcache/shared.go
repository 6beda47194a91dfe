package bankcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/db"
	"github.com/bridgeyou/search/internal/domain/bank"
	"github.com/bridgeyou/search/internal/metrics"
)

// DirectoryKey is the key the shared directory is stored under.
const DirectoryKey = "bridgeyou:bank_directory:v1"

// store is the consumer interface for the shared cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Shared keeps the directory in Redis/Valkey so replicas reuse one fetch.
// Store failures degrade to calling load; they are never returned.
type Shared struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// NewShared creates a shared cache with the given TTL.
func NewShared(s store, ttl time.Duration, logger *zap.Logger) *Shared {
	return &Shared{store: s, ttl: ttl, logger: logger}
}

// Directory returns the shared directory or loads and publishes it.
func (s *Shared) Directory(ctx context.Context, load bank.DirectoryLoader) ([]bank.Bank, error) {
	if banks, ok := s.get(ctx); ok {
		metrics.BankDirectoryCacheTotal.WithLabelValues("shared", "hit").Inc()
		return banks, nil
	}
	metrics.BankDirectoryCacheTotal.WithLabelValues("shared", "miss").Inc()

	banks, err := load(ctx)
	if err != nil {
		return nil, err
	}

	s.put(ctx, banks)
	return banks, nil
}

func (s *Shared) get(ctx context.Context) ([]bank.Bank, bool) {
	data, err := s.store.Get(ctx, DirectoryKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to get cached bank directory", zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var banks []bank.Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		s.logger.Warn("Failed to parse cached bank directory", zap.Error(err))
		return nil, false
	}
	return banks, true
}

func (s *Shared) put(ctx context.Context, banks []bank.Bank) {
	data, err := json.Marshal(banks)
	if err != nil {
		s.logger.Warn("Failed to encode bank directory", zap.Error(err))
		return
	}
	if err := s.store.SetWithTTL(ctx, DirectoryKey, data, s.ttl); err != nil {
		s.logger.Warn("Failed to cache bank directory", zap.Error(err))
	}
}

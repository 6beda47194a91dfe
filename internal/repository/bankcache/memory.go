// Package bankcache caches the bank directory so the resolver reads the
// store at most once per successful load.
package bankcache

import (
	"context"
	"slices"
	"sync"

	"github.com/bridgeyou/search/internal/domain/bank"
	"github.com/bridgeyou/search/internal/metrics"
)

// Directory is the get-or-populate contract shared by both caches.
type Directory interface {
	Directory(ctx context.Context, load bank.DirectoryLoader) ([]bank.Bank, error)
}

// Memory holds the directory for the lifetime of the process.
// Entries are never invalidated: banks added after the first load stay
// invisible until restart.
type Memory struct {
	mu     sync.RWMutex
	banks  []bank.Bank
	loaded bool
	next   Directory
}

// NewMemory creates a process-local cache. When next is non-nil, a miss is
// served through it (e.g. a Shared cache) instead of calling load directly.
func NewMemory(next Directory) *Memory {
	return &Memory{next: next}
}

// Directory returns the cached directory, populating it on first success.
// Failed loads are not cached.
func (m *Memory) Directory(ctx context.Context, load bank.DirectoryLoader) ([]bank.Bank, error) {
	m.mu.RLock()
	if m.loaded {
		out := slices.Clone(m.banks)
		m.mu.RUnlock()
		metrics.BankDirectoryCacheTotal.WithLabelValues("memory", "hit").Inc()
		return out, nil
	}
	m.mu.RUnlock()

	metrics.BankDirectoryCacheTotal.WithLabelValues("memory", "miss").Inc()

	var (
		banks []bank.Bank
		err   error
	)
	if m.next != nil {
		banks, err = m.next.Directory(ctx, load)
	} else {
		banks, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Concurrent first loads race here; the first writer wins and the
	// others return its copy.
	if !m.loaded {
		m.banks = slices.Clone(banks)
		m.loaded = true
	}
	return slices.Clone(m.banks), nil
}

package interpret

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/metrics"
)

// persistTimeout bounds the counter write made after each completion.
const persistTimeout = 2 * time.Second

// TokenBudget caps completion tokens spent per UTC day. Allow is in-memory
// only; Record updates memory first, then the shared counter when one is attached.
type TokenBudget struct {
	mu      sync.Mutex
	limit   int64
	used    int64
	day     time.Time
	now     func() time.Time
	counter Counter
	logger  *zap.Logger
}

// NewTokenBudget creates a daily budget. limit <= 0 means unlimited.
func NewTokenBudget(limit int64, logger *zap.Logger) *TokenBudget {
	b := &TokenBudget{limit: limit, now: time.Now, logger: logger}
	b.day = truncateToDay(b.now())
	return b
}

// WithClock overrides the clock used for day rollover.
func (b *TokenBudget) WithClock(now func() time.Time) *TokenBudget {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.day = truncateToDay(now())
	return b
}

// WithCounter attaches a shared counter and loads today's total from it.
// A failed load starts from zero.
func (b *TokenBudget) WithCounter(ctx context.Context, c Counter) *TokenBudget {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counter = c
	used, err := c.Load(ctx, b.day)
	if err != nil {
		b.logger.Warn("Failed to load completion budget", zap.Error(err))
		return b
	}
	b.used = used
	b.report()
	return b
}

// Allow reports whether today's budget has room for another completion.
func (b *TokenBudget) Allow(_ context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rollover()
	return b.limit <= 0 || b.used < b.limit
}

// Record adds consumed tokens. With a shared counter the in-memory total is
// replaced by the cross-replica total the counter returns.
func (b *TokenBudget) Record(ctx context.Context, tokens int) {
	if tokens <= 0 {
		return
	}

	b.mu.Lock()
	b.rollover()
	b.used += int64(tokens)
	day := b.day
	counter := b.counter
	b.report()
	b.mu.Unlock()

	if counter == nil {
		return
	}

	// Outlive request cancellation so a client disconnect does not lose the spend.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	// A failed EXPIRE still reports the incremented total.
	total, err := counter.Add(pctx, day, int64(tokens))
	if err != nil {
		b.logger.Warn("Failed to persist completion budget", zap.Error(err))
	}
	if total <= 0 {
		return
	}

	b.mu.Lock()
	if b.day.Equal(day) && total > b.used {
		b.used = total
		b.report()
	}
	b.mu.Unlock()
}

// Remaining returns tokens left today (-1 if unlimited).
func (b *TokenBudget) Remaining() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rollover()
	if b.limit <= 0 {
		return -1
	}
	return max(b.limit-b.used, 0)
}

// rollover zeroes the counter when the UTC day changes. Callers hold mu.
func (b *TokenBudget) rollover() {
	today := truncateToDay(b.now())
	if today.After(b.day) {
		b.day = today
		b.used = 0
		b.report()
	}
}

// report publishes the current usage. Callers hold mu.
func (b *TokenBudget) report() {
	metrics.CompletionBudgetUsedTokens.Set(float64(b.used))
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

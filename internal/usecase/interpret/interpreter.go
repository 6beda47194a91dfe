// Package interpret turns a free-text query into a structured analysis using
// a completion provider, falling back to keyword splitting when the provider
// is absent or misbehaves. Analyze never fails.
package interpret

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/domain"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/metrics"
)

// Completion request settings. Low temperature keeps the JSON shape stable.
const (
	temperature = 0.1
	maxTokens   = 500
)

// Interpreter outcomes, used as metric labels and log fields.
const (
	outcomeCompletion    = "completion"
	outcomeUnconfigured  = "unconfigured"
	outcomeBudget        = "budget_exhausted"
	outcomeProviderError = "provider_error"
	outcomeParseError    = "parse_error"
)

// Interpreter analyses natural-language search queries.
type Interpreter struct {
	completer Completer
	budget    Budget
	now       func() time.Time
	logger    *zap.Logger
}

// New creates an interpreter. completer may be nil: every query then gets
// the keyword fallback.
func New(completer Completer, logger *zap.Logger) *Interpreter {
	return &Interpreter{completer: completer, now: time.Now, logger: logger}
}

// WithClock overrides the clock used to anchor relative dates in the prompt.
func (i *Interpreter) WithClock(now func() time.Time) *Interpreter {
	i.now = now
	return i
}

// WithBudget gates completion calls on a token budget. Once it is spent,
// queries get the keyword fallback.
func (i *Interpreter) WithBudget(b Budget) *Interpreter {
	i.budget = b
	return i
}

// Configured reports whether a completion provider is wired.
func (i *Interpreter) Configured() bool { return i.completer != nil }

// Analyze returns the structured analysis of query.
// Provider errors and off-contract output are logged and replaced by the fallback.
func (i *Interpreter) Analyze(ctx context.Context, query string) analysis.Analysis {
	if i.completer == nil {
		i.count(outcomeUnconfigured)
		return analysis.Fallback(query)
	}

	if i.budget != nil && !i.budget.Allow(ctx) {
		i.count(outcomeBudget)
		i.logger.Warn("Completion budget exhausted, using keyword fallback",
			zap.String("outcome", outcomeBudget),
		)
		return analysis.Fallback(query)
	}

	usage := domain.UsageFromContext(ctx)
	start := time.Now()

	res, err := i.completer.Complete(ctx, domain.CompletionRequest{
		System:      systemInstruction,
		Prompt:      buildPrompt(query, i.now()),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		usage.MarkUsed()
		i.count(outcomeProviderError)
		i.logger.Warn("Query interpretation failed, using keyword fallback",
			zap.String("outcome", outcomeProviderError),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return analysis.Fallback(query)
	}
	usage.AddTokens(res.TotalTokens)
	if i.budget != nil {
		i.budget.Record(ctx, res.TotalTokens)
	}

	a, err := analysis.Parse(res.Content, query)
	if err != nil {
		i.count(outcomeParseError)
		i.logger.Warn("Completion output not usable, using keyword fallback",
			zap.String("outcome", outcomeParseError),
			zap.Int("content_length", len(res.Content)),
			zap.Error(err),
		)
		return analysis.Fallback(query)
	}

	i.count(outcomeCompletion)
	i.logger.Debug("Query interpreted",
		zap.Strings("terms", a.SearchTerms),
		zap.Strings("banks", a.Banks),
		zap.Int("categories", len(a.Categories)),
		zap.Float64("confidence", a.Confidence),
		zap.Duration("duration", time.Since(start)),
		zap.Int("total_tokens", res.TotalTokens),
	)
	return a
}

func (i *Interpreter) count(outcome string) {
	metrics.InterpreterOutcomesTotal.WithLabelValues(outcome).Inc()
}

package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/domain"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/request"
	"github.com/bridgeyou/search/internal/domain/search/result"
	"github.com/bridgeyou/search/internal/metrics"
)

// DefaultPageSize is used when New receives a non-positive page size.
const DefaultPageSize = 10

const (
	modeNatural = "natural"
	modeKeyword = "keyword"
)

// Service runs the search pipeline: interpret, resolve banks, merge, read.
type Service struct {
	repo     Repository
	interp   Interpreter
	banks    BankResolver
	pageSize int
	logger   *zap.Logger
}

// New creates a search service.
func New(repo Repository, interp Interpreter, banks BankResolver, pageSize int, logger *zap.Logger) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{repo: repo, interp: interp, banks: banks, pageSize: pageSize, logger: logger}
}

// PageSize returns the configured number of posts per page.
func (s *Service) PageSize() int { return s.pageSize }

// Search returns one page of posts for q. Interpretation and bank
// resolution never fail the request; store errors are returned wrapped in
// domain.ErrStoreUnavailable.
func (s *Service) Search(ctx context.Context, q request.Query) (result.Page, error) {
	start := time.Now()
	mode := modeKeyword
	if q.NaturalLanguage() {
		mode = modeNatural
	}

	explicit := q.Filters()

	var (
		a        analysis.Analysis
		resolved []string
	)
	if q.NaturalLanguage() {
		a = s.interp.Analyze(ctx, q.Text())
		if len(explicit.BankIDs) == 0 && len(a.Banks) > 0 {
			resolved = s.banks.Resolve(ctx, a.Banks)
		}
	} else {
		a = keywordAnalysis(q.Text())
	}

	eff, kw := Merge(explicit, a, resolved)

	posts, count, err := s.repo.Search(ctx, eff, kw, q.Authenticated(), q.Page(), s.pageSize)
	metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		return result.Page{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues(mode, "success").Inc()

	for i := range posts {
		posts[i].MarkCorrected()
	}

	page := result.New(posts, count, q.Page(), s.pageSize)
	if q.NaturalLanguage() {
		page = page.WithAnalysis(a)
	}

	s.logger.Debug("Search completed",
		zap.String("mode", mode),
		zap.Int("count", count),
		zap.Int("page", q.Page()),
		zap.Strings("bank_ids", eff.BankIDs),
		zap.String("category", string(eff.Category)),
		zap.Int("terms", len(kw)),
	)

	return page, nil
}

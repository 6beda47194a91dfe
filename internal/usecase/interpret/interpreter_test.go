package interpret

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/bridgeyou/search/internal/domain"
	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/filter"
	"github.com/bridgeyou/search/internal/metrics"
)

// --- Mocks ---

type mockCompleter struct {
	result domain.CompletionResult
	err    error
	calls  int
	got    domain.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	m.calls++
	m.got = req
	return m.result, m.err
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func outcomeCount(outcome string) float64 {
	return testutil.ToFloat64(metrics.InterpreterOutcomesTotal.WithLabelValues(outcome))
}

func assertFallback(t *testing.T, a analysis.Analysis, query string) {
	t.Helper()
	want := analysis.Fallback(query)
	if !reflect.DeepEqual(a, want) {
		t.Errorf("expected fallback analysis\n got: %+v\nwant: %+v", a, want)
	}
}

// --- Tests ---

func TestAnalyze_Unconfigured(t *testing.T) {
	before := outcomeCount(outcomeUnconfigured)
	i := New(nil, zap.NewNop())

	if i.Configured() {
		t.Error("expected unconfigured interpreter")
	}
	a := i.Analyze(context.Background(), "conseils stage BNP Paris")
	assertFallback(t, a, "conseils stage BNP Paris")

	if outcomeCount(outcomeUnconfigured) != before+1 {
		t.Error("expected unconfigured outcome to be counted")
	}
}

func TestAnalyze_ProviderError(t *testing.T) {
	comp := &mockCompleter{err: errors.New("429 rate limited")}
	i := New(comp, zap.NewNop())

	ctx, usage := domain.NewContextWithUsage(context.Background())
	a := i.Analyze(ctx, "entretiens Goldman")

	assertFallback(t, a, "entretiens Goldman")
	if comp.calls != 1 {
		t.Errorf("expected 1 completion call, got %d", comp.calls)
	}
	if !usage.Used {
		t.Error("expected usage to record the failed provider call")
	}
}

func TestAnalyze_UnparseableOutput(t *testing.T) {
	for _, content := range []string{"", "I think you mean Goldman Sachs.", `{"searchTerms": [`} {
		t.Run(content, func(t *testing.T) {
			comp := &mockCompleter{result: domain.CompletionResult{Content: content, TotalTokens: 40}}
			a := New(comp, zap.NewNop()).Analyze(context.Background(), "quant hedge fund Londres")
			assertFallback(t, a, "quant hedge fund Londres")
		})
	}
}

func TestAnalyze_ValidCompletion(t *testing.T) {
	comp := &mockCompleter{result: domain.CompletionResult{
		Content: `{"searchTerms":["entretiens"],"categories":["entretien_sales_trading","crypto"],` +
			`"types":[],"tags":[],"cities":["Paris"],"banks":["Goldman"],"sortBy":"popular","confidence":1.7}`,
		TotalTokens: 321,
	}}
	i := New(comp, zap.NewNop()).WithClock(fixedClock)

	ctx, usage := domain.NewContextWithUsage(context.Background())
	a := i.Analyze(ctx, "entretiens Goldman Paris")

	if a.Source != analysis.SourceCompletion {
		t.Fatalf("expected completion analysis, got %q", a.Source)
	}
	if !reflect.DeepEqual(a.Categories, []post.Category{post.CategoryInterview}) {
		t.Errorf("categories = %v", a.Categories)
	}
	if !reflect.DeepEqual(a.Banks, []string{"Goldman"}) {
		t.Errorf("banks = %v", a.Banks)
	}
	if a.SortBy != filter.SortPopular {
		t.Errorf("sort = %q", a.SortBy)
	}
	if a.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped 1", a.Confidence)
	}
	if usage.TotalTokens != 321 {
		t.Errorf("usage tokens = %d", usage.TotalTokens)
	}
}

func TestAnalyze_PromptCarriesVocabulary(t *testing.T) {
	comp := &mockCompleter{result: domain.CompletionResult{Content: `{}`}}
	New(comp, zap.NewNop()).WithClock(fixedClock).Analyze(context.Background(), "stage SocGen")

	if comp.got.System == "" {
		t.Error("expected system instruction")
	}
	if comp.got.Temperature != temperature || comp.got.MaxTokens != maxTokens {
		t.Errorf("unexpected settings: %+v", comp.got)
	}
	for _, want := range []string{
		string(post.CategoryInterview), string(post.CategorySchool),
		string(post.CategoryInternship), string(post.CategoryQuant),
		string(post.TypeQuestion), string(post.TypeTranscript),
		"Société Générale", "socgen", "Goldman Sachs",
		"Paris", "Londres",
		"Today is 2025-03-14",
		`Query: "stage SocGen"`,
	} {
		if !strings.Contains(comp.got.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnalyze_EmptyObjectUsesDefaults(t *testing.T) {
	comp := &mockCompleter{result: domain.CompletionResult{Content: `{}`}}
	a := New(comp, zap.NewNop()).Analyze(context.Background(), "stage summer Londres")

	if a.Confidence != analysis.DefaultConfidence {
		t.Errorf("confidence = %v, want %v", a.Confidence, analysis.DefaultConfidence)
	}
	if a.SortBy != filter.SortRecent {
		t.Errorf("sort = %q", a.SortBy)
	}
	if len(a.Categories) != 0 || len(a.Tags) != 0 {
		t.Errorf("expected empty sets, got %+v", a)
	}
}

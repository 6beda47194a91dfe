package result

import (
	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
)

// Page is one page of search results.
type Page struct {
	posts    []post.Post
	count    int
	nextPage *int
	analysis *analysis.Analysis
}

// New creates a page. nextPage is set only when rows exist past this page's end:
// count > (page+1)*pageSize.
func New(posts []post.Post, count, page, pageSize int) Page {
	p := Page{posts: posts, count: count}
	if pageSize > 0 && count > (page+1)*pageSize {
		next := page + 1
		p.nextPage = &next
	}
	return p
}

// WithAnalysis attaches the interpreter output that produced this page.
func (p Page) WithAnalysis(a analysis.Analysis) Page {
	p.analysis = &a
	return p
}

// Posts returns the posts on this page.
func (p *Page) Posts() []post.Post { return p.posts }

// Count returns the exact number of matching rows across all pages.
func (p *Page) Count() int { return p.count }

// NextPage returns the next zero-based page index, or nil on the last page.
func (p *Page) NextPage() *int { return p.nextPage }

// Analysis returns the interpreter output (nil outside natural-language mode).
func (p *Page) Analysis() *analysis.Analysis { return p.analysis }

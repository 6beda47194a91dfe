package chi

import (
	"time"

	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/filter"
	"github.com/bridgeyou/search/internal/domain/search/result"
)

// searchRequestBody is the POST /api/v1/search payload.
type searchRequestBody struct {
	Query             string       `json:"query"`
	Filters           *filtersBody `json:"filters,omitempty"`
	PageParam         int          `json:"pageParam"`
	IsNaturalLanguage bool         `json:"isNaturalLanguage"`
}

// filtersBody is the explicit filter object. Banks are directory IDs.
type filtersBody struct {
	Category string   `json:"category,omitempty"`
	Type     string   `json:"type,omitempty"`
	City     string   `json:"city,omitempty"`
	Cities   []string `json:"cities,omitempty"`
	Banks    []string `json:"banks,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
	SortBy   string   `json:"sortBy,omitempty"`
}

type searchResponse struct {
	Data           []postDTO    `json:"data"`
	Count          int          `json:"count"`
	NextPage       *int         `json:"nextPage,omitempty"`
	SearchAnalysis *analysisDTO `json:"searchAnalysis,omitempty"`
}

type bankDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type correctionDTO struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	IsSelected bool   `json:"is_selected"`
}

type postDTO struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Tags          []string        `json:"tags"`
	IsPublic      bool            `json:"is_public"`
	Status        string          `json:"status"`
	Upvotes       int             `json:"upvotes"`
	Downvotes     int             `json:"downvotes"`
	CommentsCount int             `json:"comments_count"`
	Bank          *bankDTO        `json:"bank,omitempty"`
	UserID        string          `json:"user_id"`
	City          string          `json:"city,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Corrections   []correctionDTO `json:"corrections"`
	Corrected     bool            `json:"corrected"`
}

type dateRangeDTO struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type analysisDTO struct {
	SearchTerms []string      `json:"searchTerms"`
	Categories  []string      `json:"categories"`
	Types       []string      `json:"types"`
	Tags        []string      `json:"tags"`
	Cities      []string      `json:"cities"`
	Banks       []string      `json:"banks"`
	DateRange   *dateRangeDTO `json:"dateRange,omitempty"`
	SortBy      string        `json:"sortBy"`
	Confidence  float64       `json:"confidence"`
	Source      string        `json:"source"`
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// toExplicit parses the explicit filter object. Date errors are returned
// for a 400 response; enum values are checked later by request.New.
func (f *filtersBody) toExplicit() (filter.Explicit, error) {
	if f == nil {
		return filter.Explicit{}, nil
	}
	from, err := filter.ParseDate(f.DateFrom)
	if err != nil {
		return filter.Explicit{}, err
	}
	to, err := filter.ParseDate(f.DateTo)
	if err != nil {
		return filter.Explicit{}, err
	}
	return filter.Explicit{
		Category: post.Category(f.Category),
		Type:     post.Type(f.Type),
		City:     f.City,
		Cities:   f.Cities,
		BankIDs:  f.Banks,
		Tags:     f.Tags,
		DateFrom: from,
		DateTo:   to,
		Sort:     filter.Sort(f.SortBy),
	}, nil
}

func pageToResponse(p *result.Page) searchResponse {
	posts := p.Posts()
	resp := searchResponse{
		Data:     make([]postDTO, len(posts)),
		Count:    p.Count(),
		NextPage: p.NextPage(),
	}
	for i := range posts {
		resp.Data[i] = postToDTO(&posts[i])
	}
	if a := p.Analysis(); a != nil {
		dto := analysisToDTO(a)
		resp.SearchAnalysis = &dto
	}
	return resp
}

func postToDTO(p *post.Post) postDTO {
	dto := postDTO{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      string(p.Category),
		Type:          string(p.Type),
		Tags:          nonNil(p.Tags),
		IsPublic:      p.IsPublic,
		Status:        string(p.Status),
		Upvotes:       p.Upvotes,
		Downvotes:     p.Downvotes,
		CommentsCount: p.CommentsCount,
		UserID:        p.UserID,
		City:          p.City,
		CreatedAt:     p.CreatedAt,
		Corrections:   make([]correctionDTO, len(p.Corrections)),
		Corrected:     p.Corrected,
	}
	if p.Bank != nil {
		dto.Bank = &bankDTO{ID: p.Bank.ID, Name: p.Bank.Name}
	}
	for i, c := range p.Corrections {
		dto.Corrections[i] = correctionDTO{ID: c.ID, Status: string(c.Status), IsSelected: c.IsSelected}
	}
	return dto
}

func analysisToDTO(a *analysis.Analysis) analysisDTO {
	dto := analysisDTO{
		SearchTerms: nonNil(a.SearchTerms),
		Categories:  make([]string, len(a.Categories)),
		Types:       make([]string, len(a.Types)),
		Tags:        nonNil(a.Tags),
		Cities:      nonNil(a.Cities),
		Banks:       nonNil(a.Banks),
		SortBy:      string(a.SortBy),
		Confidence:  a.Confidence,
		Source:      string(a.Source),
	}
	for i, c := range a.Categories {
		dto.Categories[i] = string(c)
	}
	for i, t := range a.Types {
		dto.Types[i] = string(t)
	}
	if a.DateRange != nil && !a.DateRange.IsEmpty() {
		dto.DateRange = &dateRangeDTO{}
		if a.DateRange.From != nil {
			dto.DateRange.From = a.DateRange.From.Format(filter.DateLayout)
		}
		if a.DateRange.To != nil {
			dto.DateRange.To = a.DateRange.To.Format(filter.DateLayout)
		}
	}
	return dto
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

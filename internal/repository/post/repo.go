// Package post reads forum posts for search from the relational store.
package post

import (
	"context"
	"fmt"

	"github.com/bridgeyou/search/internal/db/postgres"
	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/filter"
)

// store is the consumer interface for post reads (ISP).
type store interface {
	SearchPosts(ctx context.Context, q *postgres.PostQuery) ([]postgres.PostRow, int, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a post repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search returns one page of approved posts and the total number of matches.
// Anonymous callers only see public posts.
func (r *Repo) Search(
	ctx context.Context, filters filter.Effective, terms []string,
	authenticated bool, page, pageSize int,
) ([]post.Post, int, error) {
	rows, count, err := r.store.SearchPosts(ctx, toQuery(filters, terms, authenticated, page, pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}

	posts := make([]post.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, toPost(&rows[i]))
	}
	return posts, count, nil
}

func toQuery(f filter.Effective, terms []string, authenticated bool, page, pageSize int) *postgres.PostQuery {
	q := &postgres.PostQuery{
		Terms:      terms,
		Category:   string(f.Category),
		Type:       string(f.Type),
		BankIDs:    f.BankIDs,
		Tags:       f.Tags,
		Cities:     f.Cities,
		From:       f.DateRange.From,
		Order:      toOrder(f.Sort),
		PublicOnly: !authenticated,
		Limit:      pageSize,
		Offset:     page * pageSize,
	}
	if f.DateRange.To != nil {
		// "to" is an inclusive calendar day.
		before := f.DateRange.To.AddDate(0, 0, 1)
		q.Before = &before
	}
	return q
}

func toOrder(s filter.Sort) postgres.Order {
	switch s {
	case filter.SortPopular:
		return postgres.OrderPopular
	case filter.SortComments:
		return postgres.OrderComments
	default:
		return postgres.OrderRecent
	}
}

func toPost(r *postgres.PostRow) post.Post {
	p := post.Post{
		ID:            r.ID,
		Title:         r.Title,
		Content:       r.Content,
		Category:      post.Category(r.Category),
		Type:          post.Type(r.Type),
		Tags:          r.Tags,
		IsPublic:      r.IsPublic,
		Status:        post.Status(r.Status),
		Upvotes:       r.Upvotes,
		Downvotes:     r.Downvotes,
		CommentsCount: r.CommentsCount,
		UserID:        r.UserID,
		CreatedAt:     r.CreatedAt,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if r.BankID != nil {
		p.Bank = &post.Bank{ID: *r.BankID}
		if r.BankName != nil {
			p.Bank.Name = *r.BankName
		}
	}
	if r.City != nil {
		p.City = *r.City
	}
	p.Corrections = make([]post.Correction, 0, len(r.Corrections))
	for _, c := range r.Corrections {
		p.Corrections = append(p.Corrections, post.Correction{
			ID:         c.ID,
			Status:     post.Status(c.Status),
			IsSelected: c.IsSelected,
		})
	}
	return p
}

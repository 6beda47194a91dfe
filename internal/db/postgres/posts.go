package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bridgeyou/search/internal/db"
)

// CorrectionRow is a correction as embedded in a post row.
type CorrectionRow struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	IsSelected bool   `json:"is_selected"`
}

// PostRow is one post with its bank and corrections joined in.
type PostRow struct {
	ID            string
	Title         string
	Content       string
	Category      string
	Type          string
	Tags          []string
	IsPublic      bool
	Status        string
	Upvotes       int
	Downvotes     int
	CommentsCount int
	BankID        *string
	BankName      *string
	UserID        string
	City          *string
	CreatedAt     time.Time
	Corrections   []CorrectionRow
}

// SearchPosts runs the page query and the exact count in one round trip.
func (s *Store) SearchPosts(ctx context.Context, q *PostQuery) ([]PostRow, int, error) {
	bq := q.build()

	batch := &pgx.Batch{}
	batch.Queue(bq.countSQL, bq.countArgs...)
	batch.Queue(bq.pageSQL, bq.pageArgs...)

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	var count int
	if err := br.QueryRow().Scan(&count); err != nil {
		return nil, 0, &db.Error{Op: db.OpQueryPosts, Err: fmt.Errorf("count: %w", err)}
	}

	rows, err := br.Query()
	if err != nil {
		return nil, 0, &db.Error{Op: db.OpQueryPosts, Err: err}
	}
	defer rows.Close()

	out := make([]PostRow, 0, q.Limit)
	for rows.Next() {
		r, err := scanPost(rows)
		if err != nil {
			return nil, 0, &db.Error{Op: db.OpQueryPosts, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &db.Error{Op: db.OpQueryPosts, Err: err}
	}

	return out, count, nil
}

func scanPost(rows pgx.Rows) (PostRow, error) {
	var (
		r           PostRow
		corrections []byte
	)
	err := rows.Scan(
		&r.ID, &r.Title, &r.Content, &r.Category, &r.Type, &r.Tags, &r.IsPublic, &r.Status,
		&r.Upvotes, &r.Downvotes, &r.CommentsCount, &r.BankID, &r.BankName, &r.UserID, &r.City, &r.CreatedAt,
		&corrections,
	)
	if err != nil {
		return PostRow{}, fmt.Errorf("scan post: %w", err)
	}
	if err := json.Unmarshal(corrections, &r.Corrections); err != nil {
		return PostRow{}, fmt.Errorf("decode corrections of %s: %w", r.ID, err)
	}
	return r, nil
}

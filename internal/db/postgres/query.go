package postgres

import (
	"strconv"
	"strings"
	"time"
)

// Order is a whitelisted ORDER BY column for post searches.
type Order string

// Post orderings. Every ordering breaks ties on id DESC.
const (
	OrderRecent   Order = "created_at"
	OrderPopular  Order = "upvotes"
	OrderComments Order = "comments_count"
)

// PostQuery describes one paginated read over approved posts.
// Empty fields impose no constraint.
type PostQuery struct {
	Terms      []string
	Category   string
	Type       string
	BankIDs    []string
	Tags       []string
	Cities     []string
	From       *time.Time
	Before     *time.Time // exclusive upper bound on created_at
	Order      Order
	PublicOnly bool
	Limit      int
	Offset     int
}

const postColumns = `p.id, p.title, p.content, p.category, p.type, p.tags, p.is_public, p.status,
	p.upvotes, p.downvotes, p.comments_count, p.bank_id, b.name, p.user_id, p.city, p.created_at,
	COALESCE((
		SELECT json_agg(json_build_object('id', c.id, 'status', c.status, 'is_selected', c.is_selected) ORDER BY c.created_at)
		FROM corrections c
		WHERE c.post_id = p.id
	), '[]'::json)`

// builtQuery holds the count and page statements sharing one WHERE clause.
type builtQuery struct {
	countSQL  string
	countArgs []any
	pageSQL   string
	pageArgs  []any
}

// build renders q into parameterized SQL. Only whitelisted identifiers are
// interpolated; every value is a bind argument.
func (q *PostQuery) build() builtQuery {
	var (
		conds = []string{"p.status = 'approved'"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.PublicOnly {
		conds = append(conds, "p.is_public = TRUE")
	}
	if len(q.Terms) > 0 {
		ors := make([]string, 0, len(q.Terms))
		for _, t := range q.Terms {
			ph := arg("%" + escapeLike(t) + "%")
			ors = append(ors, "p.title ILIKE "+ph+" OR p.content ILIKE "+ph)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if q.Category != "" {
		conds = append(conds, "p.category = "+arg(q.Category))
	}
	if q.Type != "" {
		conds = append(conds, "p.type = "+arg(q.Type))
	}
	if len(q.BankIDs) > 0 {
		conds = append(conds, "p.bank_id = ANY("+arg(q.BankIDs)+")")
	}
	if len(q.Tags) > 0 {
		conds = append(conds, "p.tags && "+arg(q.Tags)+"::text[]")
	}
	if len(q.Cities) > 0 {
		conds = append(conds, "p.city = ANY("+arg(q.Cities)+")")
	}
	if q.From != nil {
		conds = append(conds, "p.created_at >= "+arg(*q.From))
	}
	if q.Before != nil {
		conds = append(conds, "p.created_at < "+arg(*q.Before))
	}

	where := strings.Join(conds, " AND ")

	countArgs := make([]any, len(args))
	copy(countArgs, args)

	limit := arg(q.Limit)
	offset := arg(q.Offset)

	return builtQuery{
		countSQL:  "SELECT COUNT(*) FROM posts p WHERE " + where,
		countArgs: countArgs,
		pageSQL: "SELECT " + postColumns + " FROM posts p LEFT JOIN banks b ON b.id = p.bank_id WHERE " + where +
			" ORDER BY " + q.orderBy() + " LIMIT " + limit + " OFFSET " + offset,
		pageArgs: args,
	}
}

func (q *PostQuery) orderBy() string {
	switch q.Order {
	case OrderPopular, OrderComments:
		return "p." + string(q.Order) + " DESC, p.id DESC"
	default:
		return "p.created_at DESC, p.id DESC"
	}
}

// escapeLike escapes LIKE metacharacters so terms match literally under
// the default backslash escape.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Package post holds the forum post read model used by search.
package post

import "time"

// Category is the forum section a post belongs to.
type Category string

// Forum categories.
const (
	CategoryInterview  Category = "entretien_sales_trading"
	CategorySchool     Category = "conseils_ecole"
	CategoryInternship Category = "stage_summer_graduate"
	CategoryQuant      Category = "quant_hedge_funds"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryInterview, CategorySchool, CategoryInternship, CategoryQuant}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryInterview, CategorySchool, CategoryInternship, CategoryQuant:
		return true
	}
	return false
}

// Type is the kind of post.
type Type string

// Post types.
const (
	TypeQuestion   Type = "question"
	TypeExperience Type = "retour_experience"
	TypeTranscript Type = "transcript_entretien"
	TypeAttachment Type = "fichier_attache"
)

// Types lists every post type in display order.
var Types = []Type{TypeQuestion, TypeExperience, TypeTranscript, TypeAttachment}

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case TypeQuestion, TypeExperience, TypeTranscript, TypeAttachment:
		return true
	}
	return false
}

// Status is the moderation state shared by posts and corrections.
type Status string

// Moderation states. Only approved posts are visible to search.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Correction is a crowd-sourced answer validation attached to a post.
type Correction struct {
	ID         string
	Status     Status
	IsSelected bool
}

// Bank is the bank a post is about, as embedded in search rows.
type Bank struct {
	ID   string
	Name string
}

// Post is a forum post as returned by search.
type Post struct {
	ID            string
	Title         string
	Content       string
	Category      Category
	Type          Type
	Tags          []string
	IsPublic      bool
	Status        Status
	Upvotes       int
	Downvotes     int
	CommentsCount int
	Bank          *Bank
	UserID        string
	City          string
	CreatedAt     time.Time
	Corrections   []Correction
	Corrected     bool
}

// HasApprovedCorrection reports whether any embedded correction was approved.
func (p *Post) HasApprovedCorrection() bool {
	for _, c := range p.Corrections {
		if c.Status == StatusApproved {
			return true
		}
	}
	return false
}

// MarkCorrected sets the derived Corrected flag from the embedded corrections.
func (p *Post) MarkCorrected() {
	p.Corrected = p.HasApprovedCorrection()
}

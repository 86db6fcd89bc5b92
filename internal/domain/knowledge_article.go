package domain

import "time"

// KnowledgeArticle is a help-center entry. Featured articles surface on the
// login page; order_index controls their placement.
type KnowledgeArticle struct {
	ID         string
	Title      string
	Content    string
	Category   string
	Tags       []string
	AuthorID   string
	IsFeatured bool
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

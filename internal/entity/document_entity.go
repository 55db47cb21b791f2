package entity

import "time"

// Document is user-supplied source material, keyed by the owner's bearer
// token like the rest of the content stores.
type Document struct {
	DocumentID string
	UserToken  string
	Title      string
	Text       string
	Origin     string
	Type       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

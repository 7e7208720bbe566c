package entity

import "time"

type Comment struct {
	ID        string       `json:"id"`
	Content   string       `json:"content" validate:"required,min=10,max=500"`
	DealID    string       `json:"dealId" validate:"required"`
	AuthorID  string       `json:"authorId" validate:"required"`
	Author    *UserSummary `json:"author,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// OwnedBy reports whether userID wrote the comment.
func (c *Comment) OwnedBy(userID string) bool { return c.AuthorID == userID }

package entity

import "time"

type DealStatus string

const (
	DealPending  DealStatus = "pending"
	DealApproved DealStatus = "approved"
	DealRejected DealStatus = "rejected"
)

// Categories accepted for a deal.
var Categories = []string{"High-Tech", "Maison", "Mode", "Loisirs", "Autre"}

// Deal is a submitted discount listing subject to moderation.
// Temperature is hot votes minus cold votes, maintained incrementally.
type Deal struct {
	ID            string       `json:"id"`
	Title         string       `json:"title" validate:"required,min=5,max=100"`
	Description   string       `json:"description" validate:"required,min=10,max=500"`
	Price         float64      `json:"price" validate:"gte=0"`
	OriginalPrice *float64     `json:"originalPrice" validate:"omitempty,gte=0"`
	URL           string       `json:"url,omitempty"`
	Category      string       `json:"category" validate:"required,dealcategory"`
	Status        DealStatus   `json:"status" validate:"required,oneof=pending approved rejected"`
	Temperature   int          `json:"temperature"`
	AuthorID      string       `json:"authorId" validate:"required"`
	Author        *UserSummary `json:"author,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Editable reports whether substantive fields may still change.
func (d *Deal) Editable() bool { return d.Status == DealPending }

// OwnedBy reports whether userID authored the deal.
func (d *Deal) OwnedBy(userID string) bool { return d.AuthorID == userID }

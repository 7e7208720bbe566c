package repository

import (
	"context"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

// DealFilter narrows deal listings. Query is a case-insensitive substring
// matched against title or description.
type DealFilter struct {
	Status entity.DealStatus
	Query  string
}

type DealRepository interface {
	Create(ctx context.Context, d *entity.Deal) error
	// GetByID resolves the author summary as well.
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	// Update persists the editable fields and status; temperature is left alone.
	Update(ctx context.Context, d *entity.Deal) error
	// Delete removes the deal together with its comments and votes.
	Delete(ctx context.Context, id string) error
	// List returns matching deals newest first along with the total count.
	List(ctx context.Context, f DealFilter, p Page) ([]entity.Deal, int, error)
}

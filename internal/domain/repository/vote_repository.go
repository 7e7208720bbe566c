package repository

import (
	"context"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

// VoteRepository stores votes and keeps Deal.Temperature in step with them.
// Each write method applies the vote change and the temperature delta atomically.
type VoteRepository interface {
	Get(ctx context.Context, dealID, userID string) (*entity.Vote, error)
	// Create inserts v and adds delta to the deal's temperature.
	// Returns ErrDuplicate if the user already voted on the deal.
	Create(ctx context.Context, v *entity.Vote, delta int) error
	// ChangeType flips v to v.Type and adds delta to the deal's temperature.
	ChangeType(ctx context.Context, v *entity.Vote, delta int) error
	// Delete removes v and adds delta to the deal's temperature.
	Delete(ctx context.Context, v *entity.Vote, delta int) error
	// Tally counts the deal's votes at read time.
	Tally(ctx context.Context, dealID string) (entity.VoteTally, error)
}

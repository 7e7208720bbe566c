package repository

import (
	"context"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	// List returns users newest first along with the total count.
	List(ctx context.Context, p Page) ([]entity.User, int, error)
}

package repository

import (
	"context"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// ListByDeal returns the deal's comments newest first with author usernames resolved.
	ListByDeal(ctx context.Context, dealID string) ([]entity.Comment, error)
}

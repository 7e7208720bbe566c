package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	repo "github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

type CommentService struct {
	Deals    repo.DealRepository
	Comments repo.CommentRepository
	Logger   *logrus.Logger
}

func NewCommentService(deals repo.DealRepository, comments repo.CommentRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Deals: deals, Comments: comments, Logger: logger}
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.Validation("Content is required")
	}
	return content, nil
}

// Add posts a comment on an existing deal; the result carries the author's username.
func (s *CommentService) Add(ctx context.Context, dealID string, author *entity.User, content string) (*entity.Comment, error) {
	if author == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.Deals.GetByID(ctx, dealID); err != nil {
		return nil, notFound(err, "Deal not found")
	}

	c := &entity.Comment{Content: content, DealID: dealID, AuthorID: author.ID}
	if err := validation.Struct(c); err != nil {
		return nil, invalid(err, "Invalid comment")
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, notFound(err, "Deal not found")
	}
	if c.Author == nil {
		c.Author = &entity.UserSummary{ID: author.ID, Username: author.Username}
	}
	return c, nil
}

// ListForDeal returns a deal's comments newest first.
func (s *CommentService) ListForDeal(ctx context.Context, dealID string) ([]entity.Comment, error) {
	if _, err := s.Deals.GetByID(ctx, dealID); err != nil {
		return nil, notFound(err, "Deal not found")
	}
	return s.Comments.ListByDeal(ctx, dealID)
}

// Update edits a comment. Only its author may edit; admins get no override here.
func (s *CommentService) Update(ctx context.Context, id string, requester *entity.User, content string) (*entity.Comment, error) {
	if requester == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Comment not found")
	}
	if !c.OwnedBy(requester.ID) {
		return nil, apperror.Forbidden("You are not allowed to edit this comment")
	}

	c.Content = content
	if err := validation.Struct(c); err != nil {
		return nil, invalid(err, "Invalid comment")
	}
	if err := s.Comments.UpdateContent(ctx, id, content); err != nil {
		return nil, notFound(err, "Comment not found")
	}
	return c, nil
}

// Delete removes a comment. Allowed for its author or an admin; moderators have no override.
func (s *CommentService) Delete(ctx context.Context, id string, requester *entity.User) error {
	if requester == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Comment not found")
	}
	if !canManage(requester, c) {
		return apperror.Forbidden("You are not allowed to delete this comment")
	}
	if err := s.Comments.Delete(ctx, id); err != nil {
		return notFound(err, "Comment not found")
	}
	return nil
}

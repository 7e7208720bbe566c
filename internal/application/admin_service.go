package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	repo "github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

// AdminService covers admin-only user management.
type AdminService struct {
	Users  repo.UserRepository
	Events EventPublisher
	Logger *logrus.Logger
}

func NewAdminService(users repo.UserRepository, events EventPublisher, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Events: events, Logger: logger}
}

// ListUsers pages through every user, newest first.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (PageResult[entity.User], error) {
	p := NewPage(page, limit)
	users, total, err := s.Users.List(ctx, p)
	if err != nil {
		return PageResult[entity.User]{}, err
	}
	return newPageResult(users, p, total), nil
}

// ChangeRole assigns role to the target user. Admins cannot change their own role.
func (s *AdminService) ChangeRole(ctx context.Context, actor *entity.User, targetID string, role entity.Role) (*entity.User, error) {
	if err := RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperror.Validation("Invalid role")
	}
	if actor.ID == targetID {
		return nil, apperror.Validation("You cannot change your own role")
	}
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	previous := u.Role
	if err := s.Users.UpdateRole(ctx, targetID, role); err != nil {
		return nil, notFound(err, "User not found")
	}
	u.Role = role

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"actor_id":  actor.ID,
			"target_id": targetID,
			"from":      previous,
			"to":        role,
		}).Info("user role changed")
	}
	publish(ctx, s.Events, s.Logger, EventUserRoleChanged, map[string]any{
		"userId":  u.ID,
		"from":    previous,
		"to":      role,
		"actorId": actor.ID,
	})
	return u, nil
}

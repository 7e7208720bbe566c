package application

import (
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

// RequireRole passes only when u holds exactly role. Roles are not ordered:
// an admin does not satisfy RequireRole(RoleModerator).
func RequireRole(u *entity.User, role entity.Role) error {
	if u == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	if u.Role != role {
		return apperror.Forbidden("Insufficient permissions")
	}
	return nil
}

// RequireAnyRole passes when u's role is a member of roles.
func RequireAnyRole(u *entity.User, roles ...entity.Role) error {
	if u == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return apperror.Forbidden("Insufficient permissions")
}

type owned interface {
	OwnedBy(userID string) bool
}

// canManage reports whether u may edit or delete r: its owner or an admin.
func canManage(u *entity.User, r owned) bool {
	return u != nil && (r.OwnedBy(u.ID) || u.Role == entity.RoleAdmin)
}

package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	handlers "github.com/dealexpress/dealexpress-api/internal/interface/http"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
)

// AdminModule mounts /admin. Moderation is open to moderators and admins,
// user management to admins only.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    gin.HandlerFunc
}

func NewAdminModule(h *handlers.AdminHandler, auth gin.HandlerFunc) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/admin", m.Auth)

	moderation := g.Group("/deals", middleware.RequireRoles(entity.RoleModerator, entity.RoleAdmin))
	{
		moderation.GET("/pending", m.Handler.Pending)
		moderation.PATCH("/:id/moderate", m.Handler.Moderate)
	}

	users := g.Group("/users", middleware.RequireRoles(entity.RoleAdmin))
	{
		users.GET("", m.Handler.Users)
		users.PATCH("/:id/role", m.Handler.ChangeRole)
	}
}

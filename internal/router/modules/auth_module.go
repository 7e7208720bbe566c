package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/dealexpress/dealexpress-api/internal/interface/http"
)

// AuthModule mounts /auth. Public: register, login. Protected: me.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)
	g.GET("/me", m.Auth, m.Handler.Me)
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/dealexpress/dealexpress-api/internal/interface/http"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Auth    gin.HandlerFunc
}

func NewCommentModule(h *handlers.CommentHandler, auth gin.HandlerFunc) *CommentModule {
	return &CommentModule{Handler: h, Auth: auth}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/comments", m.Auth)
	g.PUT("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}

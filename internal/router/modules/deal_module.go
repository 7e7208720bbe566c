package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/dealexpress/dealexpress-api/internal/interface/http"
)

// DealModule mounts /deals with its comments and vote sub-resources.
type DealModule struct {
	Handler *handlers.DealHandler
	Auth    gin.HandlerFunc
}

func NewDealModule(h *handlers.DealHandler, auth gin.HandlerFunc) *DealModule {
	return &DealModule{Handler: h, Auth: auth}
}

func (m *DealModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/deals")

	// Public
	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)
	g.GET("/:id/comments", m.Handler.ListComments)

	// Protected
	auth := g.Group("")
	auth.Use(m.Auth)
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/comments", m.Handler.AddComment)
		auth.POST("/:id/vote", m.Handler.Vote)
		auth.DELETE("/:id/vote", m.Handler.Unvote)
	}
}

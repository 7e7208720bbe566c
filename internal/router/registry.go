package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealexpress/dealexpress-api/pkg/response"
)

// Registry collects feature modules and mounts them under /api.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts every module plus the root welcome route and the 404 fallback.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.GET("/", func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, nil, "Welcome to DealExpress API", nil)
	})
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "Route not found", nil)
	})
}

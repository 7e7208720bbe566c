package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealexpress/dealexpress-api/pkg/response"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

// DebugModule exposes a health probe over the configured backends and the expvar dump.
type DebugModule struct {
	Checks map[string]Pinger
}

func NewDebugModule(checks map[string]Pinger) *DebugModule {
	return &DebugModule{Checks: checks}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(m.Checks))
	healthy := true
	for name, ping := range m.Checks {
		if err := ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "Service unavailable", status)
		return
	}
	response.Success(c, http.StatusOK, status, "OK", nil)
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/pkg/response"
)

// Recovery turns a panic into the opaque 500 envelope and logs what was recovered.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if logger != nil {
					logger.WithFields(logrus.Fields{
						"request_id": c.GetString("request_id"),
						"method":     c.Request.Method,
						"path":       c.Request.URL.Path,
						"panic":      rec,
					}).Error("panic recovered")
				}
				response.Error[any](c, http.StatusInternalServerError, response.InternalErrorMessage, response.InternalErrorMessage)
			}
		}()
		c.Next()
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
	"github.com/dealexpress/dealexpress-api/pkg/response"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

// Update PUT /api/comments/:id (author only)
func (h *CommentHandler) Update(c *gin.Context) {
	var req contentRequest
	if err := bindJSON(c, &req, "Content is required"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	cm, err := h.Svc.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), req.Content)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "Comment updated", nil)
}

// Delete DELETE /api/comments/:id (author or admin)
func (h *CommentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "Comment deleted", nil)
}

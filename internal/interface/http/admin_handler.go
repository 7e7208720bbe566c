package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
	"github.com/dealexpress/dealexpress-api/pkg/response"
)

type AdminHandler struct {
	Deals  *application.DealService
	Admin  *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(deals *application.DealService, admin *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Deals: deals, Admin: admin, Logger: logger}
}

type moderateRequest struct {
	Status entity.DealStatus `json:"status"`
}

type roleRequest struct {
	Role entity.Role `json:"role"`
}

// Pending GET /api/admin/deals/pending (moderator or admin)
func (h *AdminHandler) Pending(c *gin.Context) {
	deals, err := h.Deals.ListPending(c.Request.Context())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"total": len(deals), "deals": deals}, "Pending deals", nil)
}

// Moderate PATCH /api/admin/deals/:id/moderate (moderator or admin)
func (h *AdminHandler) Moderate(c *gin.Context) {
	var req moderateRequest
	if err := bindJSON(c, &req, "Status must be 'approved' or 'rejected'"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	d, err := h.Deals.Moderate(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), req.Status)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, d, "Deal "+string(d.Status), nil)
}

// Users GET /api/admin/users?page=&limit= (admin)
func (h *AdminHandler) Users(c *gin.Context) {
	p, err := h.Admin.ListUsers(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"totalUsers":  p.Total,
		"totalPages":  p.TotalPages,
		"currentPage": p.Page,
		"users":       p.Items,
	}, "Users", nil)
}

// ChangeRole PATCH /api/admin/users/:id/role (admin)
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req roleRequest
	if err := bindJSON(c, &req, "Invalid role"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	u, err := h.Admin.ChangeRole(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Role)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User role updated", nil)
}

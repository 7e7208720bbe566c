package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/interface/middleware"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func sessionMeta(s *application.Session) gin.H {
	return gin.H{"expiresAt": s.ExpiresAt}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req, "All fields are required"); err != nil {
		response.Fail(c, h.Logger, registerBindError(err))
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, sessionResponse{User: s.User, Token: s.Token}, "User registered successfully", sessionMeta(s))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req, "Email and password are required"); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, sessionResponse{User: s.User, Token: s.Token}, "Login successful", sessionMeta(s))
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Fail(c, h.Logger, apperror.Unauthorized("User not authenticated"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Current user", nil)
}

// registerBindError keeps "All fields are required" when a field is absent and
// reports rule failures, such as a short password, as an invalid user.
func registerBindError(err error) error {
	e, ok := apperror.As(err)
	if !ok {
		return err
	}
	details, _ := e.Details.(map[string]string)
	if len(details) == 0 {
		return err
	}
	for _, msg := range details {
		if msg == "is required" {
			return err
		}
	}
	e.Message = "Invalid user"
	return e
}

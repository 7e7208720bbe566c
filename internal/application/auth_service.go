package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	repo "github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

const MinPasswordLength = 8

// AuthService owns identity: registration, credential checks and token verification.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is an authenticated identity plus its bearer token.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with role=user and a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperror.Validation("Invalid user").WithDetails(map[string]string{
			"password": "must be at least 8 characters long",
		})
	}

	u := &entity.User{
		Username: strings.TrimSpace(in.Username),
		Email:    normalizeEmail(in.Email),
		Role:     entity.RoleUser,
		// placeholder so the schema check sees a password; replaced by the hash below
		Password: in.Password,
	}
	if err := validation.Struct(u); err != nil {
		return nil, invalid(err, "Invalid user")
	}

	existing, err := s.Repo.GetByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("Email already in use")
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, apperror.Validation("Invalid user").WithDetails(map[string]string{
			"password": "must be at most 72 bytes long",
		})
	}
	if err != nil {
		return nil, err
	}
	u.Password = hash

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation("Email already in use")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return s.issue(u)
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.Validation("Email and password are required")
	}
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.Validation("Invalid email or password")
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// Verify resolves a bearer token to the current user record.
func (s *AuthService) Verify(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return nil, apperror.Unauthorized("Token expired").Wrap(err)
		}
		return nil, apperror.Unauthorized("Invalid token").Wrap(err)
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found").Wrap(err)
		}
		return nil, err
	}
	return u, nil
}

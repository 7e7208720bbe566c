package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealexpress/dealexpress-api/config"
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	"github.com/dealexpress/dealexpress-api/internal/infrastructure/memory"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
	"github.com/dealexpress/dealexpress-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
	helpers.PasswordCost = bcrypt.MinCost
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	repos  repository.Set
}

func newAPI(t *testing.T) *api {
	t.Helper()
	repos := memory.NewStore().Repositories()
	logger := helpers.NewNopLogger()
	svc := NewServices(repos, helpers.NewJWTManager("router-test-secret", time.Hour), nil, nil, logger)
	return &api{t: t, engine: NewEngine(&config.Config{}, svc, logger, nil), repos: repos}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

type session struct {
	User  entity.User `json:"user"`
	Token string      `json:"token"`
}

func (a *api) register(name string) session {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": name,
		"email":    name + "@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(a.t, http.StatusCreated, code, env.Message)
	var s session
	require.NoError(a.t, json.Unmarshal(env.Data, &s))
	return s
}

func (a *api) promote(userID string, role entity.Role) {
	a.t.Helper()
	require.NoError(a.t, a.repos.Users.UpdateRole(context.Background(), userID, role))
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestDealLifecycleEndToEnd(t *testing.T) {
	a := newAPI(t)
	alice := a.register("alice")
	bob := a.register("bob")
	admin := a.register("admin")
	a.promote(admin.User.ID, entity.RoleAdmin)

	code, env := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ALICE@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, code)
	login := decode[session](t, env.Data)
	assert.Equal(t, alice.User.ID, login.User.ID)
	assert.NotContains(t, string(env.Data), "password")

	code, env = a.do(http.MethodPost, "/api/deals", login.Token, gin.H{
		"title":       "Noise cancelling headphones",
		"description": "Over-ear headphones at 40% off this week",
		"price":       149.99,
		"category":    "High-Tech",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	deal := decode[entity.Deal](t, env.Data)
	assert.Equal(t, entity.DealPending, deal.Status)
	assert.Equal(t, "TPDealExpress/deal/"+deal.ID, deal.URL)

	type dealList struct {
		Deals []entity.Deal `json:"deals"`
	}
	code, env = a.do(http.MethodGet, "/api/deals", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[dealList](t, env.Data).Deals)

	code, _ = a.do(http.MethodPatch, "/api/admin/deals/"+deal.ID+"/moderate", admin.Token, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/deals", "", nil)
	require.Equal(t, http.StatusOK, code)
	listed := decode[dealList](t, env.Data).Deals
	require.Len(t, listed, 1)
	assert.Equal(t, deal.ID, listed[0].ID)
	m := decode[map[string]int](t, env.Meta)
	assert.Equal(t, map[string]int{"page": 1, "limit": 10, "total": 1, "totalPages": 1}, m)

	code, _ = a.do(http.MethodPost, "/api/deals/"+deal.ID+"/vote", bob.Token, gin.H{"type": "hot"})
	require.Equal(t, http.StatusCreated, code)

	code, env = a.do(http.MethodGet, "/api/deals/"+deal.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[struct {
		Deal     entity.Deal      `json:"deal"`
		Comments []entity.Comment `json:"comments"`
		Votes    entity.VoteTally `json:"votes"`
	}](t, env.Data)
	assert.Equal(t, 1, detail.Deal.Temperature)
	assert.Equal(t, 1, detail.Votes.Hot)
	assert.Equal(t, 0, detail.Votes.Cold)
	assert.Empty(t, detail.Comments)

	code, env = a.do(http.MethodGet, "/api/deals/search?q=OVER-EAR", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[dealList](t, env.Data).Deals, 1)

	code, env = a.do(http.MethodPost, "/api/deals/"+deal.ID+"/vote", bob.Token, gin.H{"type": "hot"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	code, _ = a.do(http.MethodPost, "/api/deals/"+deal.ID+"/vote", bob.Token, gin.H{"type": "cold"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodDelete, "/api/deals/"+deal.ID+"/vote", bob.Token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodDelete, "/api/deals/"+deal.ID+"/vote", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodPut, "/api/deals/"+deal.ID, login.Token, gin.H{"title": "Too late to edit"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Only deals with status 'pending' can be edited", env.Message)
}

func TestCommentsOverHTTP(t *testing.T) {
	a := newAPI(t)
	alice := a.register("alice")
	bob := a.register("bob")

	code, env := a.do(http.MethodPost, "/api/deals", alice.Token, gin.H{
		"title":       "Espresso machine",
		"description": "Dual boiler machine with a big discount",
		"price":       0,
		"category":    "Maison",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	deal := decode[entity.Deal](t, env.Data)

	code, env = a.do(http.MethodPost, "/api/deals/"+deal.ID+"/comments", bob.Token, gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Content is required", env.Message)

	code, env = a.do(http.MethodPost, "/api/deals/"+deal.ID+"/comments", bob.Token, gin.H{"content": "Bought one, works great"})
	require.Equal(t, http.StatusCreated, code)
	comment := decode[entity.Comment](t, env.Data)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Username)

	code, env = a.do(http.MethodGet, "/api/deals/"+deal.ID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		DealID   string           `json:"dealId"`
		Total    int              `json:"total"`
		Comments []entity.Comment `json:"comments"`
	}](t, env.Data)
	assert.Equal(t, deal.ID, list.DealID)
	assert.Equal(t, 1, list.Total)

	code, _ = a.do(http.MethodPut, "/api/comments/"+comment.ID, alice.Token, gin.H{"content": "Not my comment to edit"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = a.do(http.MethodPut, "/api/comments/"+comment.ID, bob.Token, gin.H{"content": "Edited: works great"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodDelete, "/api/comments/"+comment.ID, bob.Token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodDelete, "/api/comments/"+comment.ID, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = a.do(http.MethodGet, "/api/deals/unknown/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAuthAndRoleGates(t *testing.T) {
	a := newAPI(t)
	alice := a.register("alice")
	mod := a.register("mod")
	a.promote(mod.User.ID, entity.RoleModerator)

	code, env := a.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authorization header missing or malformed", env.Message)

	code, _ = a.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = a.do(http.MethodGet, "/api/auth/me", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[struct {
		User entity.User `json:"user"`
	}](t, env.Data)
	assert.Equal(t, "alice", me.User.Username)

	code, _ = a.do(http.MethodGet, "/api/admin/deals/pending", alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodGet, "/api/admin/deals/pending", mod.Token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":0,"deals":[]}`, string(env.Data))

	code, env = a.do(http.MethodGet, "/api/admin/users", mod.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Insufficient permissions", env.Message)

	a.promote(mod.User.ID, entity.RoleAdmin)
	code, env = a.do(http.MethodGet, "/api/admin/users", mod.Token, nil)
	require.Equal(t, http.StatusOK, code)
	users := decode[struct {
		TotalUsers  int           `json:"totalUsers"`
		TotalPages  int           `json:"totalPages"`
		CurrentPage int           `json:"currentPage"`
		Users       []entity.User `json:"users"`
	}](t, env.Data)
	assert.Equal(t, 2, users.TotalUsers)
	assert.Equal(t, 1, users.CurrentPage)

	code, _ = a.do(http.MethodPatch, "/api/admin/users/"+alice.User.ID+"/role", mod.Token, gin.H{"role": "emperor"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, env = a.do(http.MethodPatch, "/api/admin/users/"+alice.User.ID+"/role", mod.Token, gin.H{"role": "moderator"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.RoleModerator, decode[entity.User](t, env.Data).Role)
}

func TestRegisterValidation(t *testing.T) {
	a := newAPI(t)
	a.register("alice")

	code, env := a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice2", "email": "alice@example.com", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already in use", env.Message)

	code, env = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "carol", "email": "carol@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid user", env.Message)
	assert.JSONEq(t, `{"password":"must be at least 8 characters long"}`, string(env.Error))

	code, env = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "carol", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields are required", env.Message)

	code, env = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "dave@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "username")

	code, env = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestFallbackRoutes(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome to DealExpress API", env.Message)

	code, env = a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `"Route not found"`, string(env.Error))

	code, _ = a.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/deals/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Query parameter 'q' is required.", env.Message)
}

func TestHugePageReturnsEmptyList(t *testing.T) {
	a := newAPI(t)
	alice := a.register("alice")
	admin := a.register("admin")
	a.promote(admin.User.ID, entity.RoleAdmin)

	code, env := a.do(http.MethodPost, "/api/deals", alice.Token, gin.H{
		"title":       "Espresso machine",
		"description": "Dual boiler espresso machine with grinder",
		"price":       399,
		"category":    "Maison",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	deal := decode[entity.Deal](t, env.Data)
	code, _ = a.do(http.MethodPatch, "/api/admin/deals/"+deal.ID+"/moderate", admin.Token, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, code)

	for _, path := range []string{
		"/api/deals?page=9223372036854775807",
		"/api/deals/search?q=espresso&page=9223372036854775807&limit=100",
	} {
		code, env = a.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, code, path)
		deals := decode[struct {
			Deals []entity.Deal `json:"deals"`
		}](t, env.Data).Deals
		assert.NotNil(t, deals, path)
		assert.Empty(t, deals, path)
		assert.Equal(t, 1, decode[struct {
			Total int `json:"total"`
		}](t, env.Meta).Total, path)
	}

	code, env = a.do(http.MethodGet, "/api/admin/users?page=9223372036854775807", admin.Token, nil)
	require.Equal(t, http.StatusOK, code)
	users := decode[struct {
		TotalUsers int           `json:"totalUsers"`
		Users      []entity.User `json:"users"`
	}](t, env.Data)
	assert.Equal(t, 2, users.TotalUsers)
	assert.Empty(t, users.Users)
}

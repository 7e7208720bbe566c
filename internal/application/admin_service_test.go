package application

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/pkg/apperror"
)

func TestAdminService_ListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.admin.ListUsers(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "root", page.Items[0].Username, "newest first")

	page, err = f.admin.ListUsers(ctx, 2, 3)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice", page.Items[0].Username)
}

func TestAdminService_ChangeRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.admin.ChangeRole(ctx, f.root, f.alice.ID, entity.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, u.Role)
	stored, err := f.repos.Users.GetByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, stored.Role)
	assert.Contains(t, f.events.names(), EventUserRoleChanged)

	_, err = f.admin.ChangeRole(ctx, f.root, f.alice.ID, "superuser")
	requireKind(t, err, apperror.KindValidation)

	_, err = f.admin.ChangeRole(ctx, f.root, f.root.ID, entity.RoleUser)
	requireKind(t, err, apperror.KindValidation)

	_, err = f.admin.ChangeRole(ctx, f.root, "missing", entity.RoleUser)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.admin.ChangeRole(ctx, f.mod, f.bob.ID, entity.RoleAdmin)
	requireKind(t, err, apperror.KindForbidden)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, 1, NewPage(0, 0).Page)
	assert.Equal(t, DefaultLimit, NewPage(-2, -5).Limit)
	assert.Equal(t, MaxLimit, NewPage(1, 5000).Limit)
	assert.Equal(t, 20, NewPage(3, 10).Offset())

	huge := NewPage(math.MaxInt, 0)
	assert.Equal(t, math.MaxInt32/DefaultLimit, huge.Page)
	assert.GreaterOrEqual(t, huge.Offset(), 0)
	assert.LessOrEqual(t, huge.Offset(), math.MaxInt32)
}

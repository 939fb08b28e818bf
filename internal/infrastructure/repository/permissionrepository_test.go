package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/shared/errors"
)

func newTestRole(t *testing.T, name string, scope permission.Scope) *permission.Role {
	role, err := permission.NewRole(name, permission.RoleKindStandard, scope, nil, testNow)
	require.NoError(t, err)
	return role
}

func seedPermission(t *testing.T, repo permission.PermissionRepository, codename string, scope permission.ScopeType) *permission.Permission {
	p, err := permission.NewPermission(codename, codename, 2, scope, testNow)
	require.NoError(t, err)
	_, err = repo.CreateIfMissing(context.Background(), p)
	require.NoError(t, err)
	return p
}

func TestRoleRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db, testLogger())
	ctx := context.Background()

	editor := newTestRole(t, "Editor", permission.PlatformScope())
	require.NoError(t, repo.Create(ctx, editor))

	t.Run("name is unique per scope", func(t *testing.T) {
		err := repo.Create(ctx, newTestRole(t, "Editor", permission.PlatformScope()))
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeAlreadyExists, appErr.Type)
		assert.Equal(t, "name", appErr.Field)

		assert.NoError(t, repo.Create(ctx, newTestRole(t, "Editor", permission.OrganizationScope(1))))
		assert.NoError(t, repo.Create(ctx, newTestRole(t, "Editor", permission.OrganizationScope(2))))
	})

	t.Run("lookups", func(t *testing.T) {
		byUID, err := repo.GetByUID(ctx, editor.UID())
		require.NoError(t, err)
		require.NotNil(t, byUID)
		assert.Equal(t, editor.ID(), byUID.ID())
		assert.True(t, byUID.Scope().IsPlatform())

		byName, err := repo.GetByName(ctx, permission.OrganizationScope(2), "Editor")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, uint(2), byName.Scope().OrganizationID)

		missing, err := repo.GetByName(ctx, permission.OrganizationScope(3), "Editor")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("superuser is hidden from lists", func(t *testing.T) {
		su, err := repo.GetSuperuser(ctx)
		require.NoError(t, err)
		assert.Nil(t, su)

		root, err := permission.NewRole(permission.SuperuserRoleName, permission.RoleKindSuperuser, permission.PlatformScope(), nil, testNow)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, root))

		su, err = repo.GetSuperuser(ctx)
		require.NoError(t, err)
		require.NotNil(t, su)
		assert.True(t, su.IsSuperuser())

		roles, err := repo.List(ctx, permission.PlatformScope(), false)
		require.NoError(t, err)
		assert.Len(t, roles, 1)

		roles, err = repo.List(ctx, permission.PlatformScope(), true)
		require.NoError(t, err)
		assert.Len(t, roles, 2)

		roles, err = repo.List(ctx, permission.OrganizationScope(1), false)
		require.NoError(t, err)
		assert.Len(t, roles, 1)
	})
}

func TestPermissionRepository_CreateIfMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, testLogger())
	ctx := context.Background()

	p, err := permission.NewPermission("view_user", "Can view user", 2, permission.ScopePlatform, testNow)
	require.NoError(t, err)

	created, err := repo.CreateIfMissing(ctx, p)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, p.ID())

	again, err := permission.NewPermission("view_user", "Can view user", 2, permission.ScopePlatform, testNow)
	require.NoError(t, err)
	created, err = repo.CreateIfMissing(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	// same codename in the other scope is a distinct row
	orgScoped, err := permission.NewPermission("view_user", "Can view user", 2, permission.ScopeOrganization, testNow)
	require.NoError(t, err)
	created, err = repo.CreateIfMissing(ctx, orgScoped)
	require.NoError(t, err)
	assert.True(t, created)

	platform, err := repo.ListByScope(ctx, permission.ScopePlatform)
	require.NoError(t, err)
	assert.Len(t, platform, 1)
}

func TestPermissionRepository_Grants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db, testLogger())
	roles := NewRoleRepository(db, testLogger())
	ctx := context.Background()

	view := seedPermission(t, repo, "view_member", permission.ScopeOrganization)
	add := seedPermission(t, repo, "add_member", permission.ScopeOrganization)
	seedPermission(t, repo, "view_member", permission.ScopePlatform)

	t.Run("get by codenames ignores unknown and other scopes", func(t *testing.T) {
		rows, err := repo.GetByCodenames(ctx, permission.ScopeOrganization, []string{"view_member", "nope"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, view.ID(), rows[0].ID())

		rows, err = repo.GetByCodenames(ctx, permission.ScopeOrganization, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	role := newTestRole(t, "Member", permission.OrganizationScope(1))
	require.NoError(t, roles.Create(ctx, role))

	t.Run("replace role permissions", func(t *testing.T) {
		require.NoError(t, repo.ReplaceRolePermissions(ctx, role.ID(), []uint{view.ID(), add.ID()}))
		codenames, err := repo.RoleCodenames(ctx, role.ID())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"view_member", "add_member"}, codenames)

		require.NoError(t, repo.ReplaceRolePermissions(ctx, role.ID(), []uint{view.ID()}))
		codenames, err = repo.RoleCodenames(ctx, role.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"view_member"}, codenames)

		require.NoError(t, repo.ReplaceRolePermissions(ctx, role.ID(), nil))
		codenames, err = repo.RoleCodenames(ctx, role.ID())
		require.NoError(t, err)
		assert.Empty(t, codenames)
	})

	t.Run("member grants are separate from role grants", func(t *testing.T) {
		require.NoError(t, repo.ReplaceMemberPermissions(ctx, 42, []uint{add.ID()}))

		codenames, err := repo.MemberCodenames(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, []string{"add_member"}, codenames)

		codenames, err = repo.MemberCodenames(ctx, 43)
		require.NoError(t, err)
		assert.Empty(t, codenames)
	})
}

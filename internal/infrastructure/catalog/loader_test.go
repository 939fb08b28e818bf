package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/domain/permission"
)

func TestLoad_DefaultCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	assert.Len(t, cat.Permissions(permission.ScopePlatform), 16)
	assert.Len(t, cat.Permissions(permission.ScopeOrganization), 16)

	assert.True(t, cat.HasPermission(permission.ScopePlatform, "create_subscription"))
	assert.True(t, cat.HasPermission(permission.ScopePlatform, "update_subscription"))
	assert.True(t, cat.HasPermission(permission.ScopePlatform, "delete_subscription"))
	assert.False(t, cat.HasPermission(permission.ScopePlatform, "create_task"))
	assert.True(t, cat.HasPermission(permission.ScopeOrganization, "delete_task"))
	assert.False(t, cat.HasPermission(permission.ScopeOrganization, "read_subscription"))

	for _, code := range []string{
		catalog.FeatureCreateOrganization,
		catalog.FeatureAddMember,
		catalog.FeatureAddTask,
		catalog.FeatureAddChat,
	} {
		assert.True(t, cat.HasFeature(code), code)
	}
}

func TestParse_TypesFollowVerbs(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	types := map[string]int{}
	for _, p := range cat.Permissions(permission.ScopePlatform) {
		types[p.Codename] = p.Type
	}
	assert.Equal(t, catalog.TypeCreate, types["create_role"])
	assert.Equal(t, catalog.TypeRead, types["read_role"])
	assert.Equal(t, catalog.TypeUpdate, types["update_role"])
	assert.Equal(t, catalog.TypeDelete, types["delete_role"])
}

func TestParse_ExplicitPermissions(t *testing.T) {
	cat, err := Parse([]byte(`
verbs:
  - {name: read, type: 2}
scopes:
  platform: [user]
permissions:
  - {codename: export_user, name: Can export users, type: 2, scope: platform}
features: []
`))
	require.NoError(t, err)

	assert.True(t, cat.HasPermission(permission.ScopePlatform, "read_user"))
	assert.True(t, cat.HasPermission(permission.ScopePlatform, "export_user"))
	assert.Len(t, cat.AllPermissions(), 2)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "verbs: [\n"},
		{"unknown scope", "verbs: [{name: read, type: 2}]\nscopes:\n  galaxy: [star]\n"},
		{"duplicate codename", "verbs: [{name: read, type: 2}]\nscopes:\n  platform: [user]\npermissions:\n  - {codename: read_user, name: dup, type: 2, scope: platform}\n"},
		{"duplicate feature", "features:\n  - {code: add_chat, name: a}\n  - {code: add_chat, name: b}\n"},
		{"bad type", "verbs: [{name: fly, type: 9}]\nscopes:\n  platform: [user]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

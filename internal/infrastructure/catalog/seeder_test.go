package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/infrastructure/migration"
	"github.com/orris-inc/warden/internal/infrastructure/repository"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))
	return gdb
}

func TestSeeder_IsAppendOnlyAndIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	log := logger.NewNopLogger()
	perms := repository.NewPermissionRepository(gdb, log)
	features := repository.NewFeatureRepository(gdb)
	seeder := NewSeeder(perms, features, db.NewTransactionManager(gdb), log)
	ctx := context.Background()

	cat, err := Load()
	require.NoError(t, err)

	first, err := seeder.Seed(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, 32, first.Permissions)
	assert.Equal(t, 4, first.Features)

	second, err := seeder.Seed(ctx, cat)
	require.NoError(t, err)
	assert.Zero(t, second.Permissions)
	assert.Zero(t, second.Features)

	// a smaller catalog never removes rows
	small, err := Parse([]byte("verbs: [{name: read, type: 2}]\nscopes:\n  platform: [user]\n"))
	require.NoError(t, err)
	_, err = seeder.Seed(ctx, small)
	require.NoError(t, err)

	platform, err := perms.ListByScope(ctx, permission.ScopePlatform)
	require.NoError(t, err)
	assert.Len(t, platform, 16)

	all, err := features.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

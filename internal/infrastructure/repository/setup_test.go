package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/infrastructure/migration"
	"github.com/orris-inc/warden/internal/shared/logger"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// each pooled connection would open its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testLogger() logger.Interface {
	return logger.NewNopLogger()
}

func newTestAccount(username string) principal.NewAccount {
	return principal.NewAccount{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$04$hash",
	}
}

func createTestCustomer(t *testing.T, repo principal.CustomerRepository, username string) *principal.Customer {
	c, err := principal.NewCustomer(newTestAccount(username), testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

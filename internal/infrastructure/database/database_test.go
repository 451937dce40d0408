package database

import (
	"context"
	"testing"

	"github.com/sangkips/gopos-api/internal/config"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteMigrateAndSeed(t *testing.T) {
	db, err := New(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, Ping(context.Background(), db))

	admin := config.AdminConfig{Phone: "6737165617", Password: "448613", Name: "Owner"}
	require.NoError(t, SeedDefaultData(db, admin))
	// Seeding twice keeps a single admin
	require.NoError(t, SeedDefaultData(db, admin))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, enum.RoleSuperAdmin, users[0].Role)
	assert.Equal(t, "Owner", users[0].Name)
	assert.True(t, utils.CheckPasswordHash("448613", users[0].Password))
}

func TestSeedSkippedWithoutCredentials(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedDefaultData(db, config.AdminConfig{}))

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

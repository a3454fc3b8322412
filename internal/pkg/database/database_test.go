package database

import (
	"DigitalOrganisms/internal/model"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}))
}

func TestAutoMigrate_SnapshotDateUnique(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), NewGormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&model.DailySnapshot{MetricDate: "2026-01-01", TotalMembers: 1}).Error)
	err = db.Create(&model.DailySnapshot{MetricDate: "2026-01-01", TotalMembers: 2}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	var count int64
	require.NoError(t, db.Model(&model.DailySnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAutoMigrate_IntegrationCascadeDeletesLogs(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), NewGormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, AutoMigrate(db))

	integration := &model.Integration{Name: "orcid", IntegrationType: "api", CreatedByID: 1}
	require.NoError(t, db.Create(integration).Error)
	require.NoError(t, db.Create(&model.IntegrationUsageLog{IntegrationID: integration.ID, Endpoint: "/x", Method: "GET", ResponseCode: 200}).Error)

	require.NoError(t, db.Delete(&model.Integration{}, integration.ID).Error)

	var count int64
	require.NoError(t, db.Model(&model.IntegrationUsageLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

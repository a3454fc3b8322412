// Package dbtest 为各层测试提供内存 SQLite 数据库
package dbtest

import (
	"DigitalOrganisms/internal/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLite 打开并迁移一个独立的内存库，测试结束自动关闭
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := database.NewGormConfig()
	cfg.Logger = cfg.Logger.LogMode(gormlogger.Warn)

	db, err := gorm.Open(sqlite.Open("file::memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库与连接绑定，只能保留一条连接
	sqlDB.SetMaxOpenConns(1)
	// 与 MySQL 一致地校验外键
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/util"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIntegrationRepo_LogUsage(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	integration := seedIntegration(t, db, "zotero", consts.IntegrationStatusActive, "", 0)

	affected, err := repo.LogUsage(ctx, &model.IntegrationUsageLog{
		IntegrationID:  integration.ID,
		UserID:         util.PtrUint64(3),
		Endpoint:       "/items",
		Method:         "GET",
		ResponseCode:   200,
		ResponseTimeMs: 12.5,
		Timestamp:      now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetIntegrationByID(ctx, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalRequests)
	require.NotNil(t, got.LastUsed)

	var logs int64
	require.NoError(t, db.Model(&model.IntegrationUsageLog{}).Count(&logs).Error)
	assert.Equal(t, int64(1), logs)
}

// 外键校验开启，集成不存在时也只返回 0
func TestIntegrationRepo_LogUsageMissingIntegration(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)

	affected, err := repo.LogUsage(context.Background(), &model.IntegrationUsageLog{
		IntegrationID: 404,
		Timestamp:     time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Zero(t, affected)

	var logs int64
	require.NoError(t, db.Model(&model.IntegrationUsageLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

// 计数更新失败时日志写入必须一同回滚
func TestIntegrationRepo_LogUsageIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)
	integration := seedIntegration(t, db, "orcid", consts.IntegrationStatusActive, "", 0)

	injected := errors.New("injected counter failure")
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_counter", func(tx *gorm.DB) {
		if tx.Statement.Table == "integrations" {
			_ = tx.AddError(injected)
		}
	}))

	_, err := repo.LogUsage(context.Background(), &model.IntegrationUsageLog{
		IntegrationID: integration.ID,
		Timestamp:     time.Now().UTC(),
	})
	require.ErrorIs(t, err, injected)

	require.NoError(t, db.Callback().Update().Remove("test:fail_counter"))

	var logs int64
	require.NoError(t, db.Model(&model.IntegrationUsageLog{}).Count(&logs).Error)
	assert.Zero(t, logs)

	got, err := repo.GetIntegrationByID(context.Background(), integration.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalRequests)
	assert.Nil(t, got.LastUsed)
}

// 日志写入失败时计数更新必须一同回滚
func TestIntegrationRepo_LogUsageInsertFailureRollsBackCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)
	integration := seedIntegration(t, db, "crossref", consts.IntegrationStatusActive, "", 2)

	injected := errors.New("injected insert failure")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_usage_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "integration_usage_logs" {
			_ = tx.AddError(injected)
		}
	}))

	_, err := repo.LogUsage(context.Background(), &model.IntegrationUsageLog{
		IntegrationID: integration.ID,
		Timestamp:     time.Now().UTC(),
	})
	require.ErrorIs(t, err, injected)

	require.NoError(t, db.Callback().Create().Remove("test:fail_usage_insert"))

	got, err := repo.GetIntegrationByID(context.Background(), integration.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalRequests)
	assert.Nil(t, got.LastUsed)
}

// 模拟 MySQL 只统计变更行：值未变化时 RowsAffected 为 0，仍视为命中
func TestIntegrationRepo_UpdateHealthUnchangedRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)
	ctx := context.Background()
	integration := seedIntegration(t, db, "datacite", consts.IntegrationStatusActive, "", 0)

	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:changed_rows", func(tx *gorm.DB) {
		if tx.Statement.Table == "integrations" {
			tx.RowsAffected = 0
		}
	}))
	t.Cleanup(func() {
		_ = db.Callback().Update().Remove("test:changed_rows")
	})

	affected, err := repo.UpdateHealth(ctx, integration.ID, consts.HealthStatusHealthy, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateHealth(ctx, 404, consts.HealthStatusHealthy, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestIntegrationRepo_HealthAndBreakdowns(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegrationRepo(db)
	ctx := context.Background()

	a := seedIntegration(t, db, "a", consts.IntegrationStatusActive, "http://a.example", 5)
	b := seedIntegration(t, db, "b", consts.IntegrationStatusActive, "", 5)
	c := seedIntegration(t, db, "c", consts.IntegrationStatusDeprecated, "http://c.example", 9)

	checkedAt := time.Now().UTC()
	affected, err := repo.UpdateHealth(ctx, a.ID, consts.HealthStatusHealthy, checkedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateHealth(ctx, 404, consts.HealthStatusHealthy, checkedAt)
	require.NoError(t, err)
	assert.Zero(t, affected)

	total, err := repo.CountIntegrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	byHealth, err := repo.CountByHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{consts.HealthStatusHealthy: 1, consts.HealthStatusUnknown: 2}, byHealth)

	byType, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"api": 3}, byType)

	targets, err := repo.ListProbeTargets(ctx)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, a.ID, targets[0].ID)

	top, err := repo.TopByRequests(ctx, consts.TopN)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, c.ID, top[0].ID)
	assert.Equal(t, a.ID, top[1].ID)
	assert.Equal(t, b.ID, top[2].ID)
	assert.Nil(t, top[0].LastUsed)
}

package repository

import (
	"DigitalOrganisms/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type UsageLogRepo interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
	AverageResponseTimeSince(ctx context.Context, since time.Time) (float64, error)
	CountByIntegrationSince(ctx context.Context, since time.Time) (map[uint64]int64, error)
	FindExpiredBatch(ctx context.Context, before time.Time, limit int) ([]*model.IntegrationUsageLog, error)
	DeleteByIDs(ctx context.Context, ids []uint64) (int64, error)
}

type usageLogRepoImpl struct {
	db *gorm.DB
}

func NewUsageLogRepo(db *gorm.DB) UsageLogRepo {
	return &usageLogRepoImpl{db: db}
}

func (s *usageLogRepoImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.IntegrationUsageLog{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count, err
}

// AverageResponseTimeSince 窗口内无调用时返回 0
func (s *usageLogRepoImpl) AverageResponseTimeSince(ctx context.Context, since time.Time) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).
		Model(&model.IntegrationUsageLog{}).
		Select("COALESCE(AVG(response_time_ms), 0)").
		Where("timestamp >= ?", since).
		Scan(&avg).Error
	return avg, err
}

func (s *usageLogRepoImpl) CountByIntegrationSince(ctx context.Context, since time.Time) (map[uint64]int64, error) {
	rows := make([]struct {
		IntegrationID uint64
		Total         int64
	}, 0)
	err := s.db.WithContext(ctx).
		Model(&model.IntegrationUsageLog{}).
		Select("integration_id, COUNT(*) AS total").
		Where("timestamp >= ?", since).
		Group("integration_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		result[row.IntegrationID] = row.Total
	}
	return result, nil
}

// FindExpiredBatch 取一批早于 before 的日志，按 id 升序
func (s *usageLogRepoImpl) FindExpiredBatch(ctx context.Context, before time.Time, limit int) ([]*model.IntegrationUsageLog, error) {
	logs := make([]*model.IntegrationUsageLog, 0)
	err := s.db.WithContext(ctx).
		Where("timestamp < ?", before).
		Order("id ASC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *usageLogRepoImpl) DeleteByIDs(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.IntegrationUsageLog{})
	return result.RowsAffected, result.Error
}

package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type IntegrationRepo interface {
	CreateIntegration(ctx context.Context, integration *model.Integration) error
	GetIntegrationByID(ctx context.Context, id uint64) (*model.Integration, error)
	ListIntegrations(ctx context.Context) ([]*model.Integration, error)
	ListProbeTargets(ctx context.Context) ([]*model.Integration, error)
	UpdateHealth(ctx context.Context, id uint64, status string, checkedAt time.Time) (int64, error)
	LogUsage(ctx context.Context, usage *model.IntegrationUsageLog) (int64, error)
	CountIntegrations(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	CountByHealth(ctx context.Context) (map[string]int64, error)
	TopByRequests(ctx context.Context, limit int) ([]*model.Integration, error)
}

type integrationRepoImpl struct {
	db *gorm.DB
}

func NewIntegrationRepo(db *gorm.DB) IntegrationRepo {
	return &integrationRepoImpl{db: db}
}

func (s *integrationRepoImpl) CreateIntegration(ctx context.Context, integration *model.Integration) error {
	return s.db.WithContext(ctx).Create(integration).Error
}

func (s *integrationRepoImpl) GetIntegrationByID(ctx context.Context, id uint64) (*model.Integration, error) {
	integration := &model.Integration{}
	err := s.db.WithContext(ctx).First(integration, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return integration, nil
}

func (s *integrationRepoImpl) ListIntegrations(ctx context.Context) ([]*model.Integration, error) {
	integrations := make([]*model.Integration, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

// ListProbeTargets 需要健康探测的集成：状态为 active 且配置了接口地址
func (s *integrationRepoImpl) ListProbeTargets(ctx context.Context) ([]*model.Integration, error) {
	integrations := make([]*model.Integration, 0)
	err := s.db.WithContext(ctx).
		Where("status = ?", consts.IntegrationStatusActive).
		Where("api_endpoint IS NOT NULL AND api_endpoint <> ''").
		Order("id ASC").
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

// UpdateHealth 返回命中的行数，值未变化时同样计为命中
func (s *integrationRepoImpl) UpdateHealth(ctx context.Context, id uint64, status string, checkedAt time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Integration{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"health_status":     status,
			"last_health_check": checkedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		return result.RowsAffected, nil
	}

	// MySQL 只统计实际变更的行
	var matched int64
	err := s.db.WithContext(ctx).Model(&model.Integration{}).Where("id = ?", id).Count(&matched).Error
	return matched, err
}

// LogUsage 同一事务内累加计数并追加调用日志，集成不存在时返回 0 且不写入
func (s *integrationRepoImpl) LogUsage(ctx context.Context, usage *model.IntegrationUsageLog) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先更新计数，借此确认集成存在，避免日志写入触发外键错误
		result := tx.Model(&model.Integration{}).
			Where("id = ?", usage.IntegrationID).
			Updates(map[string]any{
				"total_requests": gorm.Expr("total_requests + ?", 1),
				"last_used":      usage.Timestamp,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errRollback
		}

		if err := tx.Create(usage).Error; err != nil {
			return err
		}
		affected = result.RowsAffected
		return nil
	})
	if errors.Is(err, errRollback) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *integrationRepoImpl) CountIntegrations(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Integration{}).Count(&count).Error
	return count, err
}

func (s *integrationRepoImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Integration{}).
		Where("status = ?", consts.IntegrationStatusActive).
		Count(&count).Error
	return count, err
}

func (s *integrationRepoImpl) CountByType(ctx context.Context) (map[string]int64, error) {
	return countGroupBy(ctx, s.db, &model.Integration{}, "integration_type")
}

func (s *integrationRepoImpl) CountByHealth(ctx context.Context) (map[string]int64, error) {
	return countGroupBy(ctx, s.db, &model.Integration{}, "health_status")
}

// TopByRequests 累计调用量倒序，同调用量按 id 升序
func (s *integrationRepoImpl) TopByRequests(ctx context.Context, limit int) ([]*model.Integration, error) {
	integrations := make([]*model.Integration, 0)
	err := s.db.WithContext(ctx).
		Select("id", "name", "total_requests", "last_used").
		Order("total_requests DESC").
		Order("id ASC").
		Limit(limit).
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

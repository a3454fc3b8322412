package repository

import (
	"DigitalOrganisms/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// SnapshotRepo 每日快照只由快照记录器写入
type SnapshotRepo interface {
	GetSnapshotByDate(ctx context.Context, date string) (*model.DailySnapshot, error)
	CreateSnapshot(ctx context.Context, snapshot *model.DailySnapshot) error
	ListSnapshotsSince(ctx context.Context, fromDate string) ([]*model.DailySnapshot, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

func (s *snapshotRepoImpl) GetSnapshotByDate(ctx context.Context, date string) (*model.DailySnapshot, error) {
	snapshot := &model.DailySnapshot{}
	err := s.db.WithContext(ctx).Where("metric_date = ?", date).First(snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return snapshot, nil
}

// CreateSnapshot 日期唯一索引冲突时原样返回错误，由调用方回读
func (s *snapshotRepoImpl) CreateSnapshot(ctx context.Context, snapshot *model.DailySnapshot) error {
	return s.db.WithContext(ctx).Create(snapshot).Error
}

// ListSnapshotsSince 获取 fromDate 当天及之后的快照，按日期升序
func (s *snapshotRepoImpl) ListSnapshotsSince(ctx context.Context, fromDate string) ([]*model.DailySnapshot, error) {
	snapshots := make([]*model.DailySnapshot, 0)
	err := s.db.WithContext(ctx).
		Where("metric_date >= ?", fromDate).
		Order("metric_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

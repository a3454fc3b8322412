package repository

import (
	"context"

	"gorm.io/gorm"
)

type HealthRepo interface {
	Ping(ctx context.Context) error
}

type healthRepoImpl struct {
	db *gorm.DB
}

func NewHealthRepo(db *gorm.DB) HealthRepo {
	return &healthRepoImpl{db: db}
}

// Ping 执行 SELECT 1 验证存储连通性
func (s *healthRepoImpl) Ping(ctx context.Context) error {
	var one int
	return s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

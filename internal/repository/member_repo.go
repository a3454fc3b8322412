package repository

import (
	"DigitalOrganisms/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MemberRepo interface {
	GetMemberByID(ctx context.Context, id uint64) (*model.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*model.Member, error)
	CreateMember(ctx context.Context, member *model.Member) error
	UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
	CountActiveLoggedInSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type memberRepoImpl struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepo {
	return &memberRepoImpl{db: db}
}

func (s *memberRepoImpl) GetMemberByID(ctx context.Context, id uint64) (*model.Member, error) {
	member := &model.Member{}
	err := s.db.WithContext(ctx).First(member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

func (s *memberRepoImpl) GetMemberByUsername(ctx context.Context, username string) (*model.Member, error) {
	member := &model.Member{}
	err := s.db.WithContext(ctx).Where("username = ?", username).First(member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

func (s *memberRepoImpl) CreateMember(ctx context.Context, member *model.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

// UpdateLastLogin 登录时刷新，活跃度指标依赖此字段
func (s *memberRepoImpl) UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (s *memberRepoImpl) active(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Member{}).Where("is_active = ?", true)
}

func (s *memberRepoImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.active(ctx).Count(&count).Error
	return count, err
}

func (s *memberRepoImpl) CountActiveLoggedInSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.active(ctx).Where("last_login >= ?", since).Count(&count).Error
	return count, err
}

func (s *memberRepoImpl) CountActiveCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.active(ctx).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// CountActiveCreatedBetween 统计 [from, to) 区间内注册的成员
func (s *memberRepoImpl) CountActiveCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := s.active(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

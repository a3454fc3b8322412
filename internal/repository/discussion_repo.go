package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

// TopDiscussionRow 按评论数排序的讨论帖
type TopDiscussionRow struct {
	ID           uint64
	Title        string
	Views        int64
	CommentCount int64
}

type DiscussionRepo interface {
	CountThreads(ctx context.Context) (int64, error)
	CountThreadsActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountThreadComments(ctx context.Context) (int64, error)
	CountClassified(ctx context.Context) (int64, error)
	CountResolved(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	TopByComments(ctx context.Context, limit int) ([]*TopDiscussionRow, error)
	ListDiscussions(ctx context.Context, discussionType string, offset, limit int) ([]*model.Discussion, int64, error)
}

type discussionRepoImpl struct {
	db *gorm.DB
}

func NewDiscussionRepo(db *gorm.DB) DiscussionRepo {
	return &discussionRepoImpl{db: db}
}

func (s *discussionRepoImpl) CountThreads(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ForumPost{}).Count(&count).Error
	return count, err
}

// CountThreadsActiveSince 创建或更新任一落在窗口内即算活跃
func (s *discussionRepoImpl) CountThreadsActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ForumPost{}).
		Where("created_at >= ? OR updated_at >= ?", since, since).
		Count(&count).Error
	return count, err
}

func (s *discussionRepoImpl) CountThreadComments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("forum_post_id IS NOT NULL").
		Count(&count).Error
	return count, err
}

func (s *discussionRepoImpl) CountClassified(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Discussion{}).Count(&count).Error
	return count, err
}

func (s *discussionRepoImpl) CountResolved(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Discussion{}).
		Where("resolution_status = ?", consts.ResolutionStatusResolved).
		Count(&count).Error
	return count, err
}

func (s *discussionRepoImpl) CountByType(ctx context.Context) (map[string]int64, error) {
	return countGroupBy(ctx, s.db, &model.Discussion{}, "discussion_type")
}

// TopByComments 评论数倒序，同评论数按 id 升序
func (s *discussionRepoImpl) TopByComments(ctx context.Context, limit int) ([]*TopDiscussionRow, error) {
	rows := make([]*TopDiscussionRow, 0)
	err := s.db.WithContext(ctx).
		Table("forum_posts").
		Select("forum_posts.id, forum_posts.title, forum_posts.views, COUNT(comments.id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.forum_post_id = forum_posts.id").
		Group("forum_posts.id, forum_posts.title, forum_posts.views").
		Order("comment_count DESC").
		Order("forum_posts.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDiscussions 按创建时间倒序分页，discussionType 为空时不过滤
func (s *discussionRepoImpl) ListDiscussions(ctx context.Context, discussionType string, offset, limit int) ([]*model.Discussion, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Discussion{})
	if discussionType != "" {
		query = query.Where("discussion_type = ?", discussionType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	discussions := make([]*model.Discussion, 0)
	err := query.
		Preload("ForumPost").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&discussions).Error
	if err != nil {
		return nil, 0, err
	}
	return discussions, total, nil
}

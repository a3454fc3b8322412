package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

// TopArticleRow 热门文章，作者不存在时 Author 为 nil
type TopArticleRow struct {
	ID     uint64
	Title  string
	Views  int64
	Author *string
}

type ArticleRepo interface {
	CountArticles(ctx context.Context) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	CountPublishedSince(ctx context.Context, since time.Time) (int64, error)
	AveragePublishedViews(ctx context.Context) (float64, error)
	TopPublishedByViews(ctx context.Context, limit int) ([]*TopArticleRow, error)
}

type articleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepo {
	return &articleRepoImpl{db: db}
}

func (s *articleRepoImpl) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Article{}).Where("status = ?", consts.ArticleStatusPublished)
}

func (s *articleRepoImpl) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).Count(&count).Error
	return count, err
}

func (s *articleRepoImpl) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := s.published(ctx).Count(&count).Error
	return count, err
}

func (s *articleRepoImpl) CountPublishedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.published(ctx).Where("published_at >= ?", since).Count(&count).Error
	return count, err
}

// AveragePublishedViews 无已发布文章时返回 0
func (s *articleRepoImpl) AveragePublishedViews(ctx context.Context) (float64, error) {
	var avg float64
	err := s.published(ctx).Select("COALESCE(AVG(views), 0)").Scan(&avg).Error
	return avg, err
}

// TopPublishedByViews 浏览量倒序，同浏览量按 id 升序
func (s *articleRepoImpl) TopPublishedByViews(ctx context.Context, limit int) ([]*TopArticleRow, error) {
	rows := make([]*TopArticleRow, 0)
	err := s.db.WithContext(ctx).
		Table("articles").
		Select("articles.id, articles.title, articles.views, members.username AS author").
		Joins("LEFT JOIN members ON members.id = articles.author_id").
		Where("articles.status = ?", consts.ArticleStatusPublished).
		Order("articles.views DESC").
		Order("articles.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

package repository

import (
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ResearchRepo interface {
	GetResearchArticleByID(ctx context.Context, id uint64) (*model.ResearchArticle, error)
	ListResearchArticles(ctx context.Context, researchType string, offset, limit int) ([]*model.ResearchArticle, int64, error)
	AddCitation(ctx context.Context, citation *model.Citation) (int64, error)
	CountResearchArticles(ctx context.Context) (int64, error)
	CountPublishedResearch(ctx context.Context) (int64, error)
	CountPeerReviewed(ctx context.Context) (int64, error)
	SumDownloads(ctx context.Context) (int64, error)
	CountByResearchType(ctx context.Context) (map[string]int64, error)
	CountCitations(ctx context.Context) (int64, error)
}

type researchRepoImpl struct {
	db *gorm.DB
}

func NewResearchRepo(db *gorm.DB) ResearchRepo {
	return &researchRepoImpl{db: db}
}

func (s *researchRepoImpl) GetResearchArticleByID(ctx context.Context, id uint64) (*model.ResearchArticle, error) {
	article := &model.ResearchArticle{}
	err := s.db.WithContext(ctx).Preload("Article").First(article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return article, nil
}

// ListResearchArticles 按创建时间倒序分页，researchType 为空时不过滤
func (s *researchRepoImpl) ListResearchArticles(ctx context.Context, researchType string, offset, limit int) ([]*model.ResearchArticle, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.ResearchArticle{})
	if researchType != "" {
		query = query.Where("research_type = ?", researchType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := make([]*model.ResearchArticle, 0)
	err := query.
		Preload("Article").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// AddCitation 写入引用并累加引用数，研究文章不存在时返回 0 且不写入
func (s *researchRepoImpl) AddCitation(ctx context.Context, citation *model.Citation) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ResearchArticle{}).
			Where("id = ?", citation.ResearchArticleID).
			UpdateColumn("citation_count", gorm.Expr("citation_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errRollback
		}
		affected = result.RowsAffected
		return tx.Create(citation).Error
	})
	if errors.Is(err, errRollback) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *researchRepoImpl) CountResearchArticles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ResearchArticle{}).Count(&count).Error
	return count, err
}

// CountPublishedResearch 只统计所属文章已发布的研究文章
func (s *researchRepoImpl) CountPublishedResearch(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ResearchArticle{}).
		Joins("JOIN articles ON articles.id = research_articles.article_id").
		Where("articles.status = ?", consts.ArticleStatusPublished).
		Count(&count).Error
	return count, err
}

func (s *researchRepoImpl) CountPeerReviewed(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ResearchArticle{}).
		Where("peer_reviewed = ?", true).
		Count(&count).Error
	return count, err
}

func (s *researchRepoImpl) SumDownloads(ctx context.Context) (int64, error) {
	var sum int64
	err := s.db.WithContext(ctx).
		Model(&model.ResearchArticle{}).
		Select("COALESCE(SUM(download_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (s *researchRepoImpl) CountByResearchType(ctx context.Context) (map[string]int64, error) {
	return countGroupBy(ctx, s.db, &model.ResearchArticle{}, "research_type")
}

func (s *researchRepoImpl) CountCitations(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Citation{}).Count(&count).Error
	return count, err
}

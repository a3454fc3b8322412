package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type ResearchService interface {
	ListResearchArticles(ctx context.Context, page, perPage int, researchType string) (*dto.ResearchArticleListDTO, error)
	AddCitation(ctx context.Context, researchArticleID uint64, req *dto.AddCitationDTO) (*dto.CitationDTO, error)
}

type researchServiceImpl struct {
	researchRepo repository.ResearchRepo
}

func NewResearchService(researchRepo repository.ResearchRepo) ResearchService {
	return &researchServiceImpl{researchRepo: researchRepo}
}

func (s *researchServiceImpl) ListResearchArticles(ctx context.Context, page, perPage int, researchType string) (*dto.ResearchArticleListDTO, error) {
	page, perPage = util.NormalizePage(page, perPage)
	articles, total, err := s.researchRepo.ListResearchArticles(ctx, researchType, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ResearchArticleDTO, 0, len(articles))
	for _, article := range articles {
		item := &dto.ResearchArticleDTO{}
		if err = copier.Copy(item, article); err != nil {
			return nil, err
		}
		item.Title = article.Article.Title
		item.Slug = article.Article.Slug
		item.AuthorID = article.Article.AuthorID
		item.Views = article.Article.Views
		item.PublishedAt = article.Article.PublishedAt
		list = append(list, item)
	}

	return &dto.ResearchArticleListDTO{
		Articles: list,
		Pagination: &dto.PaginationDTO{
			Page:    page,
			Pages:   util.TotalPages(total, perPage),
			PerPage: perPage,
			Total:   total,
		},
	}, nil
}

// AddCitation 引用写入与引用数累加在同一事务
func (s *researchServiceImpl) AddCitation(ctx context.Context, researchArticleID uint64, req *dto.AddCitationDTO) (*dto.CitationDTO, error) {
	citation := &model.Citation{}
	if err := copier.Copy(citation, req); err != nil {
		return nil, err
	}
	citation.ResearchArticleID = researchArticleID

	affected, err := s.researchRepo.AddCitation(ctx, citation)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrResearchArticleNotFound
	}

	result := &dto.CitationDTO{}
	if err = copier.Copy(result, citation); err != nil {
		return nil, err
	}
	return result, nil
}

package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"context"
)

type DiscussionService interface {
	ListDiscussions(ctx context.Context, page, perPage int, discussionType string) (*dto.DiscussionListDTO, error)
}

type discussionServiceImpl struct {
	discussionRepo repository.DiscussionRepo
}

func NewDiscussionService(discussionRepo repository.DiscussionRepo) DiscussionService {
	return &discussionServiceImpl{discussionRepo: discussionRepo}
}

func (s *discussionServiceImpl) ListDiscussions(ctx context.Context, page, perPage int, discussionType string) (*dto.DiscussionListDTO, error) {
	page, perPage = util.NormalizePage(page, perPage)
	discussions, total, err := s.discussionRepo.ListDiscussions(ctx, discussionType, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.DiscussionDTO, 0, len(discussions))
	for _, d := range discussions {
		list = append(list, &dto.DiscussionDTO{
			ID:               d.ID,
			ForumPostID:      d.ForumPostID,
			Title:            d.ForumPost.Title,
			AuthorID:         d.ForumPost.AuthorID,
			Views:            d.ForumPost.Views,
			DiscussionType:   d.DiscussionType,
			ComplexityLevel:  d.ComplexityLevel,
			ResolutionStatus: d.ResolutionStatus,
			IsFeatured:       d.IsFeatured,
			CreatedAt:        d.CreatedAt,
			UpdatedAt:        d.UpdatedAt,
		})
	}

	return &dto.DiscussionListDTO{
		Discussions: list,
		Pagination: &dto.PaginationDTO{
			Page:    page,
			Pages:   util.TotalPages(total, perPage),
			PerPage: perPage,
			Total:   total,
		},
	}, nil
}

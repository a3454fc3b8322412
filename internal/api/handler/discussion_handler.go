package handler

import (
	"DigitalOrganisms/internal/pkg/response"
	"DigitalOrganisms/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscussionHandler struct {
	discussionSvc service.DiscussionService
}

func NewDiscussionHandler(discussionSvc service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{
		discussionSvc: discussionSvc,
	}
}

func (s *DiscussionHandler) ListDiscussions(c *gin.Context) {
	page, perPage := pageQuery(c)
	discussions, err := s.discussionSvc.ListDiscussions(c.Request.Context(), page, perPage, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, discussions)
}

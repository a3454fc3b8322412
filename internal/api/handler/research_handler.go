package handler

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/response"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"

	"github.com/gin-gonic/gin"
)

type ResearchHandler struct {
	researchSvc service.ResearchService
}

func NewResearchHandler(researchSvc service.ResearchService) *ResearchHandler {
	return &ResearchHandler{
		researchSvc: researchSvc,
	}
}

// ListArticles 按 type 过滤的研究文章分页
func (s *ResearchHandler) ListArticles(c *gin.Context) {
	page, perPage := pageQuery(c)
	articles, err := s.researchSvc.ListResearchArticles(c.Request.Context(), page, perPage, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, articles)
}

func (s *ResearchHandler) AddCitation(c *gin.Context) {
	articleID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AddCitationDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	citation, err := s.researchSvc.AddCitation(c.Request.Context(), articleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, citation)
}

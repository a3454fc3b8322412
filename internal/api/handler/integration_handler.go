package handler

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/response"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"

	"github.com/gin-gonic/gin"
)

type IntegrationHandler struct {
	integrationSvc service.IntegrationService
}

func NewIntegrationHandler(integrationSvc service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{
		integrationSvc: integrationSvc,
	}
}

func (s *IntegrationHandler) ListIntegrations(c *gin.Context) {
	integrations, err := s.integrationSvc.ListIntegrations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, integrations)
}

func (s *IntegrationHandler) CreateIntegration(c *gin.Context) {
	var req dto.CreateIntegrationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	integration, err := s.integrationSvc.CreateIntegration(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, integration)
}

// LogUsage 匿名调用时 user_id 为空
func (s *IntegrationHandler) LogUsage(c *gin.Context) {
	integrationID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LogUsageDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	var actorID *uint64
	if uid := c.GetUint64("user_id"); uid != 0 {
		actorID = util.PtrUint64(uid)
	}
	if err = s.integrationSvc.LogIntegrationUsage(c.Request.Context(), integrationID, actorID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *IntegrationHandler) UpdateHealth(c *gin.Context) {
	integrationID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateHealthDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.integrationSvc.UpdateIntegrationHealth(c.Request.Context(), integrationID, req.HealthStatus); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

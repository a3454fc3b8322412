package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type IntegrationService interface {
	ListIntegrations(ctx context.Context) ([]*dto.IntegrationDTO, error)
	CreateIntegration(ctx context.Context, creatorID uint64, req *dto.CreateIntegrationDTO) (*dto.IntegrationDTO, error)
	LogIntegrationUsage(ctx context.Context, integrationID uint64, actorID *uint64, req *dto.LogUsageDTO) error
	UpdateIntegrationHealth(ctx context.Context, integrationID uint64, status string) error
	ListProbeTargets(ctx context.Context) ([]*dto.IntegrationDTO, error)
}

type integrationServiceImpl struct {
	integrationRepo repository.IntegrationRepo
	usageLogRepo    repository.UsageLogRepo
}

func NewIntegrationService(integrationRepo repository.IntegrationRepo, usageLogRepo repository.UsageLogRepo) IntegrationService {
	return &integrationServiceImpl{
		integrationRepo: integrationRepo,
		usageLogRepo:    usageLogRepo,
	}
}

func (s *integrationServiceImpl) ListIntegrations(ctx context.Context) ([]*dto.IntegrationDTO, error) {
	integrations, err := s.integrationRepo.ListIntegrations(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := s.usageLogRepo.CountByIntegrationSince(ctx, nowFunc().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	result := make([]*dto.IntegrationDTO, 0, len(integrations))
	if err = copier.Copy(&result, &integrations); err != nil {
		return nil, err
	}
	for _, item := range result {
		item.UsageCount30d = usage[item.ID]
	}
	return result, nil
}

func (s *integrationServiceImpl) CreateIntegration(ctx context.Context, creatorID uint64, req *dto.CreateIntegrationDTO) (*dto.IntegrationDTO, error) {
	if req.Status == "" {
		req.Status = consts.IntegrationStatusActive
	}
	if err := util.ValidateEnum("status", req.Status, consts.IntegrationStatuses); err != nil {
		return nil, err
	}

	integration := &model.Integration{}
	if err := copier.Copy(integration, req); err != nil {
		return nil, err
	}
	integration.CreatedByID = creatorID
	integration.HealthStatus = consts.HealthStatusUnknown

	if err := s.integrationRepo.CreateIntegration(ctx, integration); err != nil {
		return nil, err
	}

	result := &dto.IntegrationDTO{}
	if err := copier.Copy(result, integration); err != nil {
		return nil, err
	}
	return result, nil
}

// LogIntegrationUsage 写入调用日志并累加计数，body 未带 user_id 时取当前请求身份
func (s *integrationServiceImpl) LogIntegrationUsage(ctx context.Context, integrationID uint64, actorID *uint64, req *dto.LogUsageDTO) error {
	userID := req.UserID
	if userID == nil {
		userID = actorID
	}

	usage := &model.IntegrationUsageLog{
		IntegrationID:  integrationID,
		UserID:         userID,
		Endpoint:       req.Endpoint,
		Method:         req.Method,
		ResponseCode:   req.ResponseCode,
		ResponseTimeMs: req.ResponseTimeMs,
		Timestamp:      nowFunc(),
	}
	affected, err := s.integrationRepo.LogUsage(ctx, usage)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrIntegrationNotFound
	}
	return nil
}

// UpdateIntegrationHealth 非法状态直接拒绝，不落库
func (s *integrationServiceImpl) UpdateIntegrationHealth(ctx context.Context, integrationID uint64, status string) error {
	if err := util.ValidateEnum("health_status", status, consts.HealthStatuses); err != nil {
		return err
	}

	affected, err := s.integrationRepo.UpdateHealth(ctx, integrationID, status, nowFunc())
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrIntegrationNotFound
	}
	log.InfoContext(ctx, "integration health updated", "integration_id", integrationID, "health_status", status)
	return nil
}

func (s *integrationServiceImpl) ListProbeTargets(ctx context.Context) ([]*dto.IntegrationDTO, error) {
	integrations, err := s.integrationRepo.ListProbeTargets(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.IntegrationDTO, 0, len(integrations))
	if err = copier.Copy(&result, &integrations); err != nil {
		return nil, err
	}
	return result, nil
}

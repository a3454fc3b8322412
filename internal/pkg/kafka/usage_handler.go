package kafka

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/observability"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// UsageHandler 消费集成调用事件，逐条写入调用日志
type UsageHandler struct {
	integrationSvc service.IntegrationService
}

func NewUsageHandler(integrationSvc service.IntegrationService) *UsageHandler {
	return &UsageHandler{integrationSvc: integrationSvc}
}

func (s *UsageHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("integration usage consumer setup")
	return nil
}

func (s *UsageHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("integration usage consumer cleanup")
	return nil
}

func (s *UsageHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("integration usage consume claim", "topic", claim.Topic(), "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("integration usage process batch error", "err", err)
		return err
	}
	return nil
}

// logic 格式错误与未知集成直接丢弃，存储错误交给上层重试
func (s *UsageHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = logger.WithTraceID(ctx, "kafka-usage-"+uuid.NewString())

	event := &dto.UsageEventDTO{}
	if err := json.Unmarshal(msg.Value, event); err != nil {
		log.WarnContext(ctx, "drop malformed usage event", "offset", msg.Offset, "err", err)
		observability.M.UsageEventsConsumed.WithLabelValues("malformed").Inc()
		return nil
	}
	if event.IntegrationID == 0 {
		log.WarnContext(ctx, "drop usage event without integration_id", "offset", msg.Offset)
		observability.M.UsageEventsConsumed.WithLabelValues("malformed").Inc()
		return nil
	}
	if err := util.ValidateDTO(&event.LogUsageDTO); err != nil {
		log.WarnContext(ctx, "drop invalid usage event", "offset", msg.Offset, "err", err)
		observability.M.UsageEventsConsumed.WithLabelValues("malformed").Inc()
		return nil
	}

	err := s.integrationSvc.LogIntegrationUsage(ctx, event.IntegrationID, nil, &event.LogUsageDTO)
	if errors.Is(err, service.ErrIntegrationNotFound) {
		log.WarnContext(ctx, "drop usage event for unknown integration", "integration_id", event.IntegrationID)
		observability.M.UsageEventsConsumed.WithLabelValues("unknown_integration").Inc()
		return nil
	}
	if err != nil {
		observability.M.UsageEventsConsumed.WithLabelValues("retry").Inc()
		return err
	}
	observability.M.UsageEventsConsumed.WithLabelValues("logged").Inc()
	return nil
}

package kafka

import (
	"DigitalOrganisms/internal/api/config"
	"DigitalOrganisms/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	usageConsumer sarama.ConsumerGroup
	usageHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, integrationSvc service.IntegrationService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	usageConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaUsageConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		usageConsumer: usageConsumer,
		usageHandler:  NewUsageHandler(integrationSvc),
	}, nil
}

// Start 阻塞消费直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		for err := range m.usageConsumer.Errors() {
			log.Error("Error from usage consumer group", "err", err)
		}
	}()

	go func() {
		topic := cfg.KafkaUsageConsumer.Topic
		log.Info("Integration usage consumer started", "topic", topic)
		for {
			if err := m.usageConsumer.Consume(ctx, []string{topic}, m.usageHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.usageConsumer.Close(); err != nil {
		log.Error("Failed to close usage consumer", "err", err)
	}
	return nil
}

package kafka

import (
	"DigitalOrganisms/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

const clientID = "digital-organisms-metrics"

// newSaramaConfig 统一初始化 sarama.Config，未配置的超时沿用 sarama 默认值
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = clientID

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetNewest
	c.Consumer.Offsets.AutoCommit.Enable = false

	if d := seconds(kafkaCfg.Consumer.SessionTimeout); d > 0 {
		c.Consumer.Group.Session.Timeout = d
	}
	if d := seconds(kafkaCfg.Consumer.HeartbeatInterval); d > 0 {
		c.Consumer.Group.Heartbeat.Interval = d
	}
	if d := seconds(kafkaCfg.Consumer.RebalanceTimeout); d > 0 {
		c.Consumer.Group.Rebalance.Timeout = d
	}
	if d := seconds(kafkaCfg.Consumer.MaxProcessingTime); d > 0 {
		c.Consumer.MaxProcessingTime = d
	}

	return c
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

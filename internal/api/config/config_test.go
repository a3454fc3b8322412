package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 365, cfg.Metrics.HistoricalMaxDays)
	assert.Equal(t, 30, cfg.Metrics.HistoricalDefaultDays)
	assert.Equal(t, 90, cfg.Metrics.UsageRetentionDays)
	assert.Equal(t, 500, cfg.Metrics.CleanupBatchSize)
	assert.Equal(t, "0 0 1 * * *", cfg.Cron.DailySnapshot)
	assert.Equal(t, "integration-usage", cfg.KafkaUsageConsumer.Topic)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Metrics: MetricsConfig{UsageRetentionDays: 30, CleanupBatchSize: 50},
		Probe:   ProbeConfig{Timeout: 3},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 30, cfg.Metrics.UsageRetentionDays)
	assert.Equal(t, 50, cfg.Metrics.CleanupBatchSize)
	assert.Equal(t, 3, cfg.Probe.Timeout)
	assert.Equal(t, 4, cfg.Probe.Concurrency)
}

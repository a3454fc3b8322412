package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	// .env 不存在时忽略
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()

	Cfg = &cfg

	return nil
}

// ApplyDefaults 补全缺省值
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "DigitalOrganisms"
	}
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 24
	}
	if c.Cron.DailySnapshot == "" {
		c.Cron.DailySnapshot = "0 0 1 * * *"
	}
	if c.Cron.UsageLogCleanup == "" {
		c.Cron.UsageLogCleanup = "0 0 2 * * 0"
	}
	if c.Cron.IntegrationHealth == "" {
		c.Cron.IntegrationHealth = "@every 6h"
	}
	if c.Metrics.HistoricalMaxDays <= 0 {
		c.Metrics.HistoricalMaxDays = 365
	}
	if c.Metrics.HistoricalDefaultDays <= 0 {
		c.Metrics.HistoricalDefaultDays = 30
	}
	if c.Metrics.UsageRetentionDays <= 0 {
		c.Metrics.UsageRetentionDays = 90
	}
	if c.Metrics.CleanupBatchSize <= 0 {
		c.Metrics.CleanupBatchSize = 500
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = 10
	}
	if c.Probe.Concurrency <= 0 {
		c.Probe.Concurrency = 4
	}
	if c.KafkaUsageConsumer.Topic == "" {
		c.KafkaUsageConsumer.Topic = "integration-usage"
	}
	if c.KafkaUsageConsumer.GroupID == "" {
		c.KafkaUsageConsumer.GroupID = "metrics-usage-group"
	}
	if c.Logstash.Index == "" {
		c.Logstash.Index = "logstash-digital-organisms"
	}
}

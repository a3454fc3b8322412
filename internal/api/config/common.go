package config

// Config 配置主体
type Config struct {
	Server             ServerConfig       `mapstructure:"server"`
	DB                 DBConfig           `mapstructure:"database"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Mongo              MongoConfig        `mapstructure:"mongo"`
	MinIO              MinIOConfig        `mapstructure:"minio"`
	Logstash           LogstashConfig     `mapstructure:"logstash"`
	JWT                JWTConfig          `mapstructure:"jwt"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	KafkaUsageConsumer KafkaUsageConsumer `mapstructure:"kafka_usage_consumer"`
	Cron               CronConfig         `mapstructure:"cron"`
	Metrics            MetricsConfig      `mapstructure:"metrics"`
	Probe              ProbeConfig        `mapstructure:"probe"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	ArchiveBucket string `mapstructure:"archive_bucket"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// 过期时间，单位小时
	ExpireHours int `mapstructure:"expire_hours"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaUsageConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// CronConfig 定时任务表达式，带秒字段
type CronConfig struct {
	DailySnapshot     string `mapstructure:"daily_snapshot"`
	UsageLogCleanup   string `mapstructure:"usage_log_cleanup"`
	IntegrationHealth string `mapstructure:"integration_health"`
}

type MetricsConfig struct {
	HistoricalMaxDays     int `mapstructure:"historical_max_days"`
	HistoricalDefaultDays int `mapstructure:"historical_default_days"`
	UsageRetentionDays    int `mapstructure:"usage_retention_days"`
	CleanupBatchSize      int `mapstructure:"cleanup_batch_size"`
}

type ProbeConfig struct {
	// 单次探测超时，单位秒
	Timeout     int `mapstructure:"timeout"`
	Concurrency int `mapstructure:"concurrency"`
}

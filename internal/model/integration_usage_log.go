package model

import (
	"time"
)

// IntegrationUsageLog 只追加，过期后由清理任务删除
type IntegrationUsageLog struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	IntegrationID  uint64    `gorm:"not null;index:idx_integration_usage_logs_integration_id" json:"integration_id"`
	UserID         *uint64   `gorm:"index:idx_integration_usage_logs_user_id" json:"user_id"`
	Endpoint       string    `gorm:"type:varchar(200)" json:"endpoint"`
	Method         string    `gorm:"type:varchar(10)" json:"method"`
	ResponseCode   int       `json:"response_code"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	Timestamp      time.Time `gorm:"not null;index:idx_integration_usage_logs_timestamp" json:"timestamp"`
}

func (IntegrationUsageLog) TableName() string {
	return "integration_usage_logs"
}

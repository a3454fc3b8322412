package dto

import "time"

// CreateIntegrationDTO 新建集成
type CreateIntegrationDTO struct {
	Name             string `json:"name" validate:"required,max=100"`
	Description      string `json:"description"`
	IntegrationType  string `json:"integration_type" validate:"required,max=50"`
	Status           string `json:"status"`
	Version          string `json:"version" validate:"omitempty,max=20"`
	APIEndpoint      string `json:"api_endpoint" validate:"omitempty,url"`
	DocumentationURL string `json:"documentation_url" validate:"omitempty,url"`
}

// IntegrationDTO 集成详情
type IntegrationDTO struct {
	ID               uint64     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	IntegrationType  string     `json:"integration_type"`
	Status           string     `json:"status"`
	HealthStatus     string     `json:"health_status"`
	Version          string     `json:"version"`
	APIEndpoint      string     `json:"api_endpoint"`
	DocumentationURL string     `json:"documentation_url"`
	CreatedByID      uint64     `json:"created_by_id"`
	LastHealthCheck  *time.Time `json:"last_health_check"`
	TotalRequests    int64      `json:"total_requests"`
	LastUsed         *time.Time `json:"last_used"`
	UsageCount30d    int64      `json:"usage_count_30d"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// LogUsageDTO 记录一次集成调用
type LogUsageDTO struct {
	UserID         *uint64 `json:"user_id"`
	Endpoint       string  `json:"endpoint" validate:"max=200"`
	Method         string  `json:"method" validate:"max=10"`
	ResponseCode   int     `json:"response_code" validate:"gte=0,lte=999"`
	ResponseTimeMs float64 `json:"response_time_ms" validate:"gte=0"`
}

// UsageEventDTO 消息队列中的调用事件
type UsageEventDTO struct {
	IntegrationID uint64 `json:"integration_id"`
	LogUsageDTO
}

// UpdateHealthDTO 更新健康状态
type UpdateHealthDTO struct {
	HealthStatus string `json:"health_status" validate:"required"`
}

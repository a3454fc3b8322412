package model

import (
	"time"
)

type Integration struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"type:varchar(100);not null" json:"name"`
	Description      string     `gorm:"type:text" json:"description"`
	IntegrationType  string     `gorm:"type:varchar(50);not null;index:idx_integrations_integration_type" json:"integration_type"`
	Status           string     `gorm:"type:varchar(20);not null;default:active;index:idx_integrations_status" json:"status"`               // active, inactive, testing, deprecated
	HealthStatus     string     `gorm:"type:varchar(20);not null;default:unknown;index:idx_integrations_health_status" json:"health_status"` // healthy, warning, error, unknown
	Version          string     `gorm:"type:varchar(20)" json:"version"`
	APIEndpoint      string     `gorm:"type:varchar(500)" json:"api_endpoint"`
	DocumentationURL string     `gorm:"type:varchar(500)" json:"documentation_url"`
	CreatedByID      uint64     `gorm:"not null;index:idx_integrations_created_by_id" json:"created_by_id"`
	LastHealthCheck  *time.Time `json:"last_health_check"`
	TotalRequests    int64      `gorm:"not null;default:0" json:"total_requests"`
	LastUsed         *time.Time `json:"last_used"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// 关联关系
	UsageLogs []IntegrationUsageLog `gorm:"foreignKey:IntegrationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Integration) TableName() string {
	return "integrations"
}

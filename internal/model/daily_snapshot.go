package model

import (
	"time"
)

// DailySnapshot 每个 UTC 日期最多一条
type DailySnapshot struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	MetricDate          string    `gorm:"type:char(10);not null;uniqueIndex:idx_daily_snapshots_metric_date" json:"metric_date"` // YYYY-MM-DD
	TotalMembers        int64     `gorm:"not null;default:0" json:"total_members"`
	ActiveMembers7d     int64     `gorm:"not null;default:0;column:active_members_7d" json:"active_members_7d"`
	ActiveMembers30d    int64     `gorm:"not null;default:0;column:active_members_30d" json:"active_members_30d"`
	NewMembersToday     int64     `gorm:"not null;default:0" json:"new_members_today"`
	ChurnedMembersToday int64     `gorm:"not null;default:0" json:"churned_members_today"`
	TotalArticles       int64     `gorm:"not null;default:0" json:"total_articles"`
	PublishedArticles   int64     `gorm:"not null;default:0" json:"published_articles"`
	TotalDiscussions    int64     `gorm:"not null;default:0" json:"total_discussions"`
	ActiveDiscussions   int64     `gorm:"not null;default:0" json:"active_discussions"`
	TotalIntegrations   int64     `gorm:"not null;default:0" json:"total_integrations"`
	ActiveIntegrations  int64     `gorm:"not null;default:0" json:"active_integrations"`
	CreatedAt           time.Time `json:"created_at"`
}

func (DailySnapshot) TableName() string {
	return "daily_snapshots"
}

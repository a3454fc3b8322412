package dto

import "time"

// SnapshotDTO 每日快照
type SnapshotDTO struct {
	ID                  uint64    `json:"id"`
	MetricDate          string    `json:"date"`
	TotalMembers        int64     `json:"total_members"`
	ActiveMembers7d     int64     `json:"active_members_7d"`
	ActiveMembers30d    int64     `json:"active_members_30d"`
	NewMembersToday     int64     `json:"new_members_today"`
	ChurnedMembersToday int64     `json:"churned_members_today"`
	TotalArticles       int64     `json:"total_articles"`
	PublishedArticles   int64     `json:"published_articles"`
	TotalDiscussions    int64     `json:"total_discussions"`
	ActiveDiscussions   int64     `json:"active_discussions"`
	TotalIntegrations   int64     `json:"total_integrations"`
	ActiveIntegrations  int64     `json:"active_integrations"`
	CreatedAt           time.Time `json:"created_at"`
}

// GrowthTrendsDTO 区间首尾增长率，单位 %
type GrowthTrendsDTO struct {
	MembersGrowth      float64 `json:"members_growth"`
	ArticlesGrowth     float64 `json:"articles_growth"`
	DiscussionsGrowth  float64 `json:"discussions_growth"`
	IntegrationsGrowth float64 `json:"integrations_growth"`
}

// HistoricalMetricsDTO 历史序列与增长趋势
type HistoricalMetricsDTO struct {
	Historical   []*SnapshotDTO   `json:"historical"`
	GrowthTrends *GrowthTrendsDTO `json:"growth_trends"`
	PeriodDays   int              `json:"period_days"`
}

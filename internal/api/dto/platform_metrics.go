package dto

import "time"

// MemberMetricsDTO 成员指标
type MemberMetricsDTO struct {
	Total          int64   `json:"total"`
	Active7d       int64   `json:"active_7d"`
	Active30d      int64   `json:"active_30d"`
	NewToday       int64   `json:"new_today"`
	GrowthRate7d   float64 `json:"growth_rate_7d"`
	EngagementRate float64 `json:"engagement_rate"`
}

// ArticleMetricsDTO 文章指标
type ArticleMetricsDTO struct {
	Total              int64            `json:"total"`
	Published          int64            `json:"published"`
	ResearchArticles   int64            `json:"research_articles"`
	PublishedThisMonth int64            `json:"published_this_month"`
	AverageViews       float64          `json:"average_views"`
	TotalCitations     int64            `json:"total_citations"`
	TopArticles        []*TopArticleDTO `json:"top_articles"`
}

type TopArticleDTO struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Views  int64  `json:"views"`
	Author string `json:"author"`
}

// DiscussionMetricsDTO 讨论指标
type DiscussionMetricsDTO struct {
	Total           int64               `json:"total"`
	Active7d        int64               `json:"active_7d"`
	TotalComments   int64               `json:"total_comments"`
	AverageComments float64             `json:"average_comments"`
	ResolutionRate  float64             `json:"resolution_rate"`
	ByType          map[string]int64    `json:"by_type"`
	TopDiscussions  []*TopDiscussionDTO `json:"top_discussions"`
}

type TopDiscussionDTO struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	Views        int64  `json:"views"`
	CommentCount int64  `json:"comment_count"`
}

// IntegrationMetricsDTO 集成指标
type IntegrationMetricsDTO struct {
	Total                 int64                `json:"total"`
	Active                int64                `json:"active"`
	APIRequests30d        int64                `json:"api_requests_30d"`
	AverageResponseTimeMs float64              `json:"average_response_time_ms"`
	ByType                map[string]int64     `json:"by_type"`
	HealthStatus          map[string]int64     `json:"health_status"`
	TopIntegrations       []*TopIntegrationDTO `json:"top_integrations"`
}

type TopIntegrationDTO struct {
	Name          string     `json:"name"`
	TotalRequests int64      `json:"total_requests"`
	LastUsed      *time.Time `json:"last_used"`
}

// PlatformMetricsDTO 实时平台指标
type PlatformMetricsDTO struct {
	Members      *MemberMetricsDTO      `json:"members"`
	Articles     *ArticleMetricsDTO     `json:"articles"`
	Discussions  *DiscussionMetricsDTO  `json:"discussions"`
	Integrations *IntegrationMetricsDTO `json:"integrations"`
}

// DashboardDTO 看板概览
type DashboardDTO struct {
	Members         int64               `json:"members"`
	Articles        int64               `json:"articles"`
	Discussions     int64               `json:"discussions"`
	Integrations    int64               `json:"integrations"`
	DetailedMetrics *PlatformMetricsDTO `json:"detailed_metrics"`
}

// ResearchImpactDTO 研究影响力
type ResearchImpactDTO struct {
	TotalResearchArticles int64            `json:"total_research_articles"`
	PeerReviewedArticles  int64            `json:"peer_reviewed_articles"`
	TotalCitations        int64            `json:"total_citations"`
	AverageCitations      float64          `json:"average_citations"`
	TotalDownloads        int64            `json:"total_downloads"`
	PeerReviewRate        float64          `json:"peer_review_rate"`
	ByType                map[string]int64 `json:"by_type"`
}

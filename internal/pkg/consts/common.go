package consts

// 文章状态
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// 集成状态
const (
	IntegrationStatusActive     = "active"
	IntegrationStatusInactive   = "inactive"
	IntegrationStatusTesting    = "testing"
	IntegrationStatusDeprecated = "deprecated"
)

// 集成健康状态
const (
	HealthStatusHealthy = "healthy"
	HealthStatusWarning = "warning"
	HealthStatusError   = "error"
	HealthStatusUnknown = "unknown"
)

const (
	ResolutionStatusResolved = "resolved"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DateLayout 快照日期格式
const DateLayout = "2006-01-02"

// TopN 各排行榜条数
const TopN = 5

var IntegrationStatuses = []string{
	IntegrationStatusActive,
	IntegrationStatusInactive,
	IntegrationStatusTesting,
	IntegrationStatusDeprecated,
}

var HealthStatuses = []string{
	HealthStatusHealthy,
	HealthStatusWarning,
	HealthStatusError,
	HealthStatusUnknown,
}

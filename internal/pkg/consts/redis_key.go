package consts

const (
	MetricsHistoricalKey        = "metrics:historical"
	MetricsHistoricalVersionKey = "metrics:historical:version"
	TokenBlacklistKey           = "token:blacklist:"
)

const (
	DailySnapshotLock   = "lock:metrics:snapshot:"
	UsageLogCleanupLock = "lock:metrics:usage_cleanup"
	HealthProbeLock     = "lock:metrics:health_probe"
)

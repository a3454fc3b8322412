package handler

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/response"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"
	log "log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultJobRunLimit = 20
	maxJobRunLimit     = 100
)

type MetricsHandler struct {
	metricsSvc  service.MetricsService
	snapshotSvc service.SnapshotService
	jobRuns     mongo.JobRunRepo
	defaultDays int
	maxDays     int
}

func NewMetricsHandler(
	metricsSvc service.MetricsService,
	snapshotSvc service.SnapshotService,
	jobRuns mongo.JobRunRepo,
	defaultDays, maxDays int,
) *MetricsHandler {
	return &MetricsHandler{
		metricsSvc:  metricsSvc,
		snapshotSvc: snapshotSvc,
		jobRuns:     jobRuns,
		defaultDays: defaultDays,
		maxDays:     maxDays,
	}
}

// GetPlatformMetrics 实时全量指标
func (s *MetricsHandler) GetPlatformMetrics(c *gin.Context) {
	metrics, err := s.metricsSvc.GetCurrentMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

// GetDashboardMetrics 首页看板
func (s *MetricsHandler) GetDashboardMetrics(c *gin.Context) {
	dashboard, err := s.metricsSvc.GetDashboardMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}

// GetHistoricalMetrics 历史快照与增长趋势，days 缺省 30，上限 365
func (s *MetricsHandler) GetHistoricalMetrics(c *gin.Context) {
	days := s.defaultDays
	if raw, ok := c.GetQuery("days"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, util.NewFieldError("days", "number"))
			return
		}
		days = n
	}
	if days > s.maxDays {
		days = s.maxDays
	}

	result, err := s.snapshotSvc.GetHistoricalWithTrends(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MetricsHandler) GetResearchMetrics(c *gin.Context) {
	research, err := s.metricsSvc.GetResearchImpactMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, research)
}

// RecordDailyMetrics 手动触发当日快照，重复调用返回已有记录
func (s *MetricsHandler) RecordDailyMetrics(c *gin.Context) {
	snapshot, err := s.snapshotSvc.RecordDailyMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

// GetJobRuns 最近的定时任务执行记录
func (s *MetricsHandler) GetJobRuns(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultJobRunLimit)), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultJobRunLimit
	}
	if limit > maxJobRunLimit {
		limit = maxJobRunLimit
	}

	runs, err := s.jobRuns.ListRecentJobRuns(c.Request.Context(), c.Query("job"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, runs)
}

// Health 存储不可达时返回 503
func (s *MetricsHandler) Health(c *gin.Context) {
	health := &dto.HealthDTO{
		Status:    "healthy",
		Service:   "metrics",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.metricsSvc.CheckHealth(c.Request.Context()); err != nil {
		log.ErrorContext(c.Request.Context(), "health check failed", "err", err)
		health.Status = "unhealthy"
		health.Error = err.Error()
		response.Unavailable(c, health)
		return
	}
	response.Success(c, health)
}

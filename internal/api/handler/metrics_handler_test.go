package handler

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/response"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsRouter(h *MetricsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/metrics/platform", h.GetPlatformMetrics)
	r.GET("/metrics/dashboard", h.GetDashboardMetrics)
	r.GET("/metrics/historical", h.GetHistoricalMetrics)
	r.GET("/metrics/research", h.GetResearchMetrics)
	r.POST("/metrics/record-daily", h.RecordDailyMetrics)
	r.GET("/metrics/jobs", h.GetJobRuns)
	r.GET("/metrics/health", h.Health)
	return r
}

func TestMetricsHandler_Historical(t *testing.T) {
	snapshots := &fakeSnapshotService{}
	r := newMetricsRouter(NewMetricsHandler(&fakeMetricsService{}, snapshots, &fakeJobRunRepo{}, 30, 365))

	_, body := do(t, r, http.MethodGet, "/metrics/historical", nil)
	assert.Equal(t, response.Ok, body.Code)
	assert.Equal(t, 30, snapshots.lastDays)

	_, body = do(t, r, http.MethodGet, "/metrics/historical?days=1000", nil)
	var result dto.HistoricalMetricsDTO
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, 365, result.PeriodDays)

	_, body = do(t, r, http.MethodGet, "/metrics/historical?days=7", nil)
	assert.Equal(t, 7, snapshots.lastDays)

	_, body = do(t, r, http.MethodGet, "/metrics/historical?days=abc", nil)
	assert.Equal(t, response.BadRequest, body.Code)

	_, body = do(t, r, http.MethodGet, "/metrics/historical?days=-1", nil)
	assert.Equal(t, response.BadRequest, body.Code)
	assert.Contains(t, body.Message, "days")
}

func TestMetricsHandler_Aggregates(t *testing.T) {
	r := newMetricsRouter(NewMetricsHandler(&fakeMetricsService{}, &fakeSnapshotService{}, &fakeJobRunRepo{}, 30, 365))

	_, body := do(t, r, http.MethodGet, "/metrics/platform", nil)
	assert.Equal(t, response.Ok, body.Code)

	_, body = do(t, r, http.MethodGet, "/metrics/dashboard", nil)
	var dashboard dto.DashboardDTO
	require.NoError(t, json.Unmarshal(body.Data, &dashboard))
	assert.Equal(t, int64(3), dashboard.Members)

	_, body = do(t, r, http.MethodGet, "/metrics/research", nil)
	assert.Equal(t, response.Ok, body.Code)

	_, body = do(t, r, http.MethodPost, "/metrics/record-daily", nil)
	var snapshot dto.SnapshotDTO
	require.NoError(t, json.Unmarshal(body.Data, &snapshot))
	assert.Equal(t, "2024-01-01", snapshot.MetricDate)
}

func TestMetricsHandler_JobRuns(t *testing.T) {
	jobRuns := &fakeJobRunRepo{}
	r := newMetricsRouter(NewMetricsHandler(&fakeMetricsService{}, &fakeSnapshotService{}, jobRuns, 30, 365))

	_, body := do(t, r, http.MethodGet, "/metrics/jobs", nil)
	assert.Equal(t, response.Ok, body.Code)
	assert.Equal(t, int64(defaultJobRunLimit), jobRuns.limit)
	assert.Empty(t, jobRuns.job)

	_, body = do(t, r, http.MethodGet, "/metrics/jobs?job=daily_snapshot&limit=500", nil)
	assert.Equal(t, int64(maxJobRunLimit), jobRuns.limit)
	assert.Equal(t, "daily_snapshot", jobRuns.job)

	var runs []*mongo.JobRunModel
	require.NoError(t, json.Unmarshal(body.Data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, mongo.JobRunStatusSuccess, runs[0].Status)
}

func TestMetricsHandler_Health(t *testing.T) {
	r := newMetricsRouter(NewMetricsHandler(&fakeMetricsService{}, &fakeSnapshotService{}, &fakeJobRunRepo{}, 30, 365))
	w, body := do(t, r, http.MethodGet, "/metrics/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health dto.HealthDTO
	require.NoError(t, json.Unmarshal(body.Data, &health))
	assert.Equal(t, "healthy", health.Status)

	r = newMetricsRouter(NewMetricsHandler(&fakeMetricsService{healthErr: errors.New("connection refused")}, &fakeSnapshotService{}, &fakeJobRunRepo{}, 30, 365))
	w, body = do(t, r, http.MethodGet, "/metrics/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(body.Data, &health))
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "connection refused", health.Error)
}

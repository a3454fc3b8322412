package handler

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, r *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

// withUser 模拟鉴权中间件写入的身份
func withUser(uid uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != 0 {
			c.Set(logger.UserIDKey, uid)
		}
		c.Next()
	}
}

type fakeMetricsService struct {
	service.MetricsService
	healthErr error
}

func (f *fakeMetricsService) GetCurrentMetrics(context.Context) (*dto.PlatformMetricsDTO, error) {
	return &dto.PlatformMetricsDTO{}, nil
}

func (f *fakeMetricsService) GetDashboardMetrics(context.Context) (*dto.DashboardDTO, error) {
	return &dto.DashboardDTO{Members: 3, Articles: 2, Discussions: 1, Integrations: 1}, nil
}

func (f *fakeMetricsService) GetResearchImpactMetrics(context.Context) (*dto.ResearchImpactDTO, error) {
	return &dto.ResearchImpactDTO{TotalResearchArticles: 4}, nil
}

func (f *fakeMetricsService) CheckHealth(context.Context) error {
	return f.healthErr
}

type fakeSnapshotService struct {
	service.SnapshotService
	lastDays int
}

func (f *fakeSnapshotService) GetHistoricalWithTrends(_ context.Context, days int) (*dto.HistoricalMetricsDTO, error) {
	f.lastDays = days
	if days < 0 {
		return nil, util.NewFieldError("days", "gte")
	}
	return &dto.HistoricalMetricsDTO{
		Historical:   []*dto.SnapshotDTO{},
		GrowthTrends: &dto.GrowthTrendsDTO{},
		PeriodDays:   days,
	}, nil
}

func (f *fakeSnapshotService) RecordDailyMetrics(context.Context) (*dto.SnapshotDTO, error) {
	return &dto.SnapshotDTO{ID: 1, MetricDate: "2024-01-01"}, nil
}

type fakeJobRunRepo struct {
	job   string
	limit int64
}

func (f *fakeJobRunRepo) CreateJobRun(context.Context, *mongo.JobRunModel) error { return nil }

func (f *fakeJobRunRepo) ListRecentJobRuns(_ context.Context, job string, limit int64) ([]*mongo.JobRunModel, error) {
	f.job, f.limit = job, limit
	return []*mongo.JobRunModel{{Job: "daily_snapshot", Status: mongo.JobRunStatusSuccess}}, nil
}

type fakeIntegrationService struct {
	service.IntegrationService
	actorID  *uint64
	loggedID uint64
	creator  uint64
}

func (f *fakeIntegrationService) ListIntegrations(context.Context) ([]*dto.IntegrationDTO, error) {
	return []*dto.IntegrationDTO{{ID: 1, Name: "orcid"}}, nil
}

func (f *fakeIntegrationService) CreateIntegration(_ context.Context, creatorID uint64, req *dto.CreateIntegrationDTO) (*dto.IntegrationDTO, error) {
	f.creator = creatorID
	return &dto.IntegrationDTO{ID: 9, Name: req.Name, CreatedByID: creatorID}, nil
}

func (f *fakeIntegrationService) LogIntegrationUsage(_ context.Context, id uint64, actorID *uint64, _ *dto.LogUsageDTO) error {
	if id == 404 {
		return service.ErrIntegrationNotFound
	}
	f.loggedID, f.actorID = id, actorID
	return nil
}

func (f *fakeIntegrationService) UpdateIntegrationHealth(_ context.Context, id uint64, status string) error {
	if err := util.ValidateEnum("health_status", status, consts.HealthStatuses); err != nil {
		return err
	}
	if id == 404 {
		return service.ErrIntegrationNotFound
	}
	return nil
}

type fakeResearchService struct {
	service.ResearchService
	page, perPage int
	researchType  string
}

func (f *fakeResearchService) ListResearchArticles(_ context.Context, page, perPage int, researchType string) (*dto.ResearchArticleListDTO, error) {
	f.page, f.perPage, f.researchType = page, perPage, researchType
	return &dto.ResearchArticleListDTO{Articles: []*dto.ResearchArticleDTO{}, Pagination: &dto.PaginationDTO{Page: page}}, nil
}

func (f *fakeResearchService) AddCitation(_ context.Context, id uint64, req *dto.AddCitationDTO) (*dto.CitationDTO, error) {
	if id == 404 {
		return nil, service.ErrResearchArticleNotFound
	}
	return &dto.CitationDTO{ID: 1, CitingWorkTitle: req.CitingWorkTitle}, nil
}

type fakeDiscussionService struct {
	service.DiscussionService
	page, perPage  int
	discussionType string
}

func (f *fakeDiscussionService) ListDiscussions(_ context.Context, page, perPage int, discussionType string) (*dto.DiscussionListDTO, error) {
	f.page, f.perPage, f.discussionType = page, perPage, discussionType
	return &dto.DiscussionListDTO{Discussions: []*dto.DiscussionDTO{}, Pagination: &dto.PaginationDTO{Page: page}}, nil
}

type fakeMemberService struct {
	service.MemberService
	loggedOut string
}

func (f *fakeMemberService) Register(_ context.Context, req *dto.RegisterDTO) (*dto.MemberDTO, error) {
	return &dto.MemberDTO{ID: 1, Username: req.Username}, nil
}

func (f *fakeMemberService) Login(_ context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	if req.Password != "secret" {
		return nil, service.ErrPasswordIncorrect
	}
	return &dto.TokenDTO{Token: "jwt", Member: &dto.MemberDTO{ID: 1, Username: req.Username}}, nil
}

func (f *fakeMemberService) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

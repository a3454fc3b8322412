package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"context"
	log "log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// nowFunc 统一取 UTC 当前时间，测试中可替换
var nowFunc = func() time.Time {
	return time.Now().UTC()
}

type MetricsService interface {
	GetCurrentMetrics(ctx context.Context) (*dto.PlatformMetricsDTO, error)
	GetDashboardMetrics(ctx context.Context) (*dto.DashboardDTO, error)
	GetResearchImpactMetrics(ctx context.Context) (*dto.ResearchImpactDTO, error)
	CheckHealth(ctx context.Context) error
}

type metricsServiceImpl struct {
	memberRepo      repository.MemberRepo
	articleRepo     repository.ArticleRepo
	researchRepo    repository.ResearchRepo
	discussionRepo  repository.DiscussionRepo
	integrationRepo repository.IntegrationRepo
	usageLogRepo    repository.UsageLogRepo
	healthRepo      repository.HealthRepo
}

func NewMetricsService(
	memberRepo repository.MemberRepo,
	articleRepo repository.ArticleRepo,
	researchRepo repository.ResearchRepo,
	discussionRepo repository.DiscussionRepo,
	integrationRepo repository.IntegrationRepo,
	usageLogRepo repository.UsageLogRepo,
	healthRepo repository.HealthRepo,
) MetricsService {
	return &metricsServiceImpl{
		memberRepo:      memberRepo,
		articleRepo:     articleRepo,
		researchRepo:    researchRepo,
		discussionRepo:  discussionRepo,
		integrationRepo: integrationRepo,
		usageLogRepo:    usageLogRepo,
		healthRepo:      healthRepo,
	}
}

// GetCurrentMetrics 并发计算四组指标，任意一组失败则整体失败
func (s *metricsServiceImpl) GetCurrentMetrics(ctx context.Context) (*dto.PlatformMetricsDTO, error) {
	now := nowFunc()
	result := &dto.PlatformMetricsDTO{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		result.Members, err = s.memberMetrics(gCtx, now)
		return err
	})
	g.Go(func() (err error) {
		result.Articles, err = s.articleMetrics(gCtx, now)
		return err
	})
	g.Go(func() (err error) {
		result.Discussions, err = s.discussionMetrics(gCtx, now)
		return err
	})
	g.Go(func() (err error) {
		result.Integrations, err = s.integrationMetrics(gCtx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "aggregate platform metrics error", "err", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsServiceImpl) GetDashboardMetrics(ctx context.Context) (*dto.DashboardDTO, error) {
	detailed, err := s.GetCurrentMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardDTO{
		Members:         detailed.Members.Total,
		Articles:        detailed.Articles.Published,
		Discussions:     detailed.Discussions.Total,
		Integrations:    detailed.Integrations.Active,
		DetailedMetrics: detailed,
	}, nil
}

func (s *metricsServiceImpl) GetResearchImpactMetrics(ctx context.Context) (*dto.ResearchImpactDTO, error) {
	total, err := s.researchRepo.CountResearchArticles(ctx)
	if err != nil {
		return nil, err
	}
	peerReviewed, err := s.researchRepo.CountPeerReviewed(ctx)
	if err != nil {
		return nil, err
	}
	citations, err := s.researchRepo.CountCitations(ctx)
	if err != nil {
		return nil, err
	}
	downloads, err := s.researchRepo.SumDownloads(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.researchRepo.CountByResearchType(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ResearchImpactDTO{
		TotalResearchArticles: total,
		PeerReviewedArticles:  peerReviewed,
		TotalCitations:        citations,
		AverageCitations:      util.Ratio(citations, total),
		TotalDownloads:        downloads,
		PeerReviewRate:        util.Percent(peerReviewed, total),
		ByType:                byType,
	}, nil
}

// CheckHealth 存储连通性探测
func (s *metricsServiceImpl) CheckHealth(ctx context.Context) error {
	return s.healthRepo.Ping(ctx)
}

func (s *metricsServiceImpl) memberMetrics(ctx context.Context, now time.Time) (*dto.MemberMetricsDTO, error) {
	total, err := s.memberRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	active7d, err := s.memberRepo.CountActiveLoggedInSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	active30d, err := s.memberRepo.CountActiveLoggedInSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	newToday, err := s.memberRepo.CountActiveCreatedSince(ctx, util.StartOfDay(now))
	if err != nil {
		return nil, err
	}

	weekAgo := now.AddDate(0, 0, -7)
	thisWeek, err := s.memberRepo.CountActiveCreatedBetween(ctx, weekAgo, now)
	if err != nil {
		return nil, err
	}
	lastWeek, err := s.memberRepo.CountActiveCreatedBetween(ctx, now.AddDate(0, 0, -14), weekAgo)
	if err != nil {
		return nil, err
	}

	return &dto.MemberMetricsDTO{
		Total:          total,
		Active7d:       active7d,
		Active30d:      active30d,
		NewToday:       newToday,
		GrowthRate7d:   weeklyGrowth(lastWeek, thisWeek),
		EngagementRate: util.Percent(active7d, total),
	}, nil
}

// weeklyGrowth 上周为 0 时不计增长
func weeklyGrowth(previous, current int64) float64 {
	if previous == 0 {
		return 0
	}
	return util.Round2(float64(current-previous) / float64(previous) * 100)
}

func (s *metricsServiceImpl) articleMetrics(ctx context.Context, now time.Time) (*dto.ArticleMetricsDTO, error) {
	total, err := s.articleRepo.CountArticles(ctx)
	if err != nil {
		return nil, err
	}
	published, err := s.articleRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	research, err := s.researchRepo.CountPublishedResearch(ctx)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.articleRepo.CountPublishedSince(ctx, util.StartOfMonth(now))
	if err != nil {
		return nil, err
	}
	avgViews, err := s.articleRepo.AveragePublishedViews(ctx)
	if err != nil {
		return nil, err
	}
	citations, err := s.researchRepo.CountCitations(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.articleRepo.TopPublishedByViews(ctx, consts.TopN)
	if err != nil {
		return nil, err
	}

	top := make([]*dto.TopArticleDTO, 0, len(rows))
	for _, row := range rows {
		author := "Unknown"
		if row.Author != nil && *row.Author != "" {
			author = *row.Author
		}
		top = append(top, &dto.TopArticleDTO{
			ID:     row.ID,
			Title:  row.Title,
			Views:  row.Views,
			Author: author,
		})
	}

	return &dto.ArticleMetricsDTO{
		Total:              total,
		Published:          published,
		ResearchArticles:   research,
		PublishedThisMonth: thisMonth,
		AverageViews:       util.Round2(avgViews),
		TotalCitations:     citations,
		TopArticles:        top,
	}, nil
}

func (s *metricsServiceImpl) discussionMetrics(ctx context.Context, now time.Time) (*dto.DiscussionMetricsDTO, error) {
	total, err := s.discussionRepo.CountThreads(ctx)
	if err != nil {
		return nil, err
	}
	active7d, err := s.discussionRepo.CountThreadsActiveSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	comments, err := s.discussionRepo.CountThreadComments(ctx)
	if err != nil {
		return nil, err
	}
	classified, err := s.discussionRepo.CountClassified(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := s.discussionRepo.CountResolved(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.discussionRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.discussionRepo.TopByComments(ctx, consts.TopN)
	if err != nil {
		return nil, err
	}

	top := make([]*dto.TopDiscussionDTO, 0, len(rows))
	for _, row := range rows {
		top = append(top, &dto.TopDiscussionDTO{
			ID:           row.ID,
			Title:        row.Title,
			Views:        row.Views,
			CommentCount: row.CommentCount,
		})
	}

	return &dto.DiscussionMetricsDTO{
		Total:           total,
		Active7d:        active7d,
		TotalComments:   comments,
		AverageComments: util.Ratio(comments, total),
		ResolutionRate:  util.Percent(resolved, classified),
		ByType:          byType,
		TopDiscussions:  top,
	}, nil
}

func (s *metricsServiceImpl) integrationMetrics(ctx context.Context, now time.Time) (*dto.IntegrationMetricsDTO, error) {
	total, err := s.integrationRepo.CountIntegrations(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.integrationRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	since := now.AddDate(0, 0, -30)
	requests, err := s.usageLogRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	avgLatency, err := s.usageLogRepo.AverageResponseTimeSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byType, err := s.integrationRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	byHealth, err := s.integrationRepo.CountByHealth(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.integrationRepo.TopByRequests(ctx, consts.TopN)
	if err != nil {
		return nil, err
	}

	top := make([]*dto.TopIntegrationDTO, 0, len(rows))
	for _, row := range rows {
		top = append(top, &dto.TopIntegrationDTO{
			Name:          row.Name,
			TotalRequests: row.TotalRequests,
			LastUsed:      row.LastUsed,
		})
	}

	return &dto.IntegrationMetricsDTO{
		Total:                 total,
		Active:                active,
		APIRequests30d:        requests,
		AverageResponseTimeMs: util.Round2(avgLatency),
		ByType:                byType,
		HealthStatus:          byHealth,
		TopIntegrations:       top,
	}, nil
}

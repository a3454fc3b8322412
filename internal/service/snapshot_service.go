package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/database"
	"DigitalOrganisms/internal/pkg/observability"
	"DigitalOrganisms/internal/pkg/redis"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type SnapshotService interface {
	RecordDailyMetrics(ctx context.Context) (*dto.SnapshotDTO, error)
	GetHistoricalMetrics(ctx context.Context, days int) ([]*dto.SnapshotDTO, error)
	GetGrowthTrends(ctx context.Context, days int) (*dto.GrowthTrendsDTO, error)
	GetHistoricalWithTrends(ctx context.Context, days int) (*dto.HistoricalMetricsDTO, error)
}

type snapshotServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
	metricsSvc   MetricsService
}

func NewSnapshotService(snapshotRepo repository.SnapshotRepo, metricsSvc MetricsService) SnapshotService {
	return &snapshotServiceImpl{
		snapshotRepo: snapshotRepo,
		metricsSvc:   metricsSvc,
	}
}

// RecordDailyMetrics 记录当日快照，同一天重复调用返回已有记录
func (s *snapshotServiceImpl) RecordDailyMetrics(ctx context.Context) (*dto.SnapshotDTO, error) {
	today := nowFunc().Format(consts.DateLayout)

	existing, err := s.snapshotRepo.GetSnapshotByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toSnapshotDTO(existing)
	}

	metrics, err := s.metricsSvc.GetCurrentMetrics(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &model.DailySnapshot{
		MetricDate:         today,
		TotalMembers:       metrics.Members.Total,
		ActiveMembers7d:    metrics.Members.Active7d,
		ActiveMembers30d:   metrics.Members.Active30d,
		NewMembersToday:    metrics.Members.NewToday,
		TotalArticles:      metrics.Articles.Total,
		PublishedArticles:  metrics.Articles.Published,
		TotalDiscussions:   metrics.Discussions.Total,
		ActiveDiscussions:  metrics.Discussions.Active7d,
		TotalIntegrations:  metrics.Integrations.Total,
		ActiveIntegrations: metrics.Integrations.Active,
	}
	if err = s.snapshotRepo.CreateSnapshot(ctx, snapshot); err != nil {
		if !database.IsDuplicateKey(err) {
			return nil, err
		}
		// 并发写入已抢先落库，回读返回
		log.InfoContext(ctx, "daily snapshot already recorded concurrently", "date", today)
		existing, err = s.snapshotRepo.GetSnapshotByDate(ctx, today)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, UnExpectedError
		}
		return toSnapshotDTO(existing)
	}

	observability.M.SnapshotsRecorded.Inc()
	// 先推进版本，读到旧版本的请求回填的序列不会再被命中
	if _, err = redis.Incr(ctx, consts.MetricsHistoricalVersionKey); err != nil {
		log.WarnContext(ctx, "bump historical cache version error", "err", err)
	}
	if err = redis.DeleteKey(ctx, consts.MetricsHistoricalKey); err != nil {
		log.WarnContext(ctx, "invalidate historical cache error", "err", err)
	}
	log.InfoContext(ctx, "daily snapshot recorded", "date", today, "total_members", snapshot.TotalMembers)
	return toSnapshotDTO(snapshot)
}

// GetHistoricalMetrics 返回 today-days 起的快照序列，缓存至次日零点
func (s *snapshotServiceImpl) GetHistoricalMetrics(ctx context.Context, days int) ([]*dto.SnapshotDTO, error) {
	if days < 0 {
		return nil, util.NewFieldError("days", "gte")
	}

	// 版本须在读库之前取得
	version, cacheable := s.cacheVersion(ctx)
	field := strconv.Itoa(days) + ":" + version
	if cacheable {
		if cached, ok := s.getCachedSeries(ctx, field); ok {
			return cached, nil
		}
	}

	now := nowFunc()
	fromDate := util.StartOfDay(now).AddDate(0, 0, -days).Format(consts.DateLayout)
	snapshots, err := s.snapshotRepo.ListSnapshotsSince(ctx, fromDate)
	if err != nil {
		return nil, err
	}

	series := make([]*dto.SnapshotDTO, 0, len(snapshots))
	if err = copier.Copy(&series, &snapshots); err != nil {
		return nil, err
	}

	if !cacheable {
		return series, nil
	}
	if payload, err := json.Marshal(series); err == nil {
		if err = redis.HSetWithExpireAt(ctx, consts.MetricsHistoricalKey, field, payload, util.NextMidnight(now)); err != nil {
			log.WarnContext(ctx, "cache historical series error", "days", days, "err", err)
		}
	}
	return series, nil
}

// cacheVersion 当前缓存版本，每写入一条新快照加一
func (s *snapshotServiceImpl) cacheVersion(ctx context.Context) (string, bool) {
	version, err := redis.GetValue(ctx, consts.MetricsHistoricalVersionKey)
	if err != nil {
		log.WarnContext(ctx, "read historical cache version error", "err", err)
		observability.M.HistoricalCacheTotal.WithLabelValues("error").Inc()
		return "", false
	}
	if version == "" {
		version = "0"
	}
	return version, true
}

func (s *snapshotServiceImpl) getCachedSeries(ctx context.Context, field string) ([]*dto.SnapshotDTO, bool) {
	raw, err := redis.HGetField(ctx, consts.MetricsHistoricalKey, field)
	if err != nil {
		log.WarnContext(ctx, "read historical cache error", "err", err)
		observability.M.HistoricalCacheTotal.WithLabelValues("error").Inc()
		return nil, false
	}
	if raw == "" {
		observability.M.HistoricalCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	series := make([]*dto.SnapshotDTO, 0)
	if err = json.Unmarshal([]byte(raw), &series); err != nil {
		log.WarnContext(ctx, "decode historical cache error", "err", err)
		observability.M.HistoricalCacheTotal.WithLabelValues("error").Inc()
		return nil, false
	}
	observability.M.HistoricalCacheTotal.WithLabelValues("hit").Inc()
	return series, true
}

// GetGrowthTrends 比较区间首尾快照，不足两条时全部为 0
func (s *snapshotServiceImpl) GetGrowthTrends(ctx context.Context, days int) (*dto.GrowthTrendsDTO, error) {
	series, err := s.GetHistoricalMetrics(ctx, days)
	if err != nil {
		return nil, err
	}
	return growthTrends(series), nil
}

func (s *snapshotServiceImpl) GetHistoricalWithTrends(ctx context.Context, days int) (*dto.HistoricalMetricsDTO, error) {
	series, err := s.GetHistoricalMetrics(ctx, days)
	if err != nil {
		return nil, err
	}
	return &dto.HistoricalMetricsDTO{
		Historical:   series,
		GrowthTrends: growthTrends(series),
		PeriodDays:   days,
	}, nil
}

func growthTrends(series []*dto.SnapshotDTO) *dto.GrowthTrendsDTO {
	if len(series) < 2 {
		return &dto.GrowthTrendsDTO{}
	}
	first, last := series[0], series[len(series)-1]
	return &dto.GrowthTrendsDTO{
		MembersGrowth:      growth(first.TotalMembers, last.TotalMembers),
		ArticlesGrowth:     growth(first.PublishedArticles, last.PublishedArticles),
		DiscussionsGrowth:  growth(first.TotalDiscussions, last.TotalDiscussions),
		IntegrationsGrowth: growth(first.TotalIntegrations, last.TotalIntegrations),
	}
}

// growth 起点为 0 时，有增长记 100，否则记 0
func growth(first, last int64) float64 {
	if first == 0 {
		if last > 0 {
			return 100
		}
		return 0
	}
	return util.Round2(float64(last-first) / float64(first) * 100)
}

func toSnapshotDTO(snapshot *model.DailySnapshot) (*dto.SnapshotDTO, error) {
	result := &dto.SnapshotDTO{}
	if err := copier.Copy(result, snapshot); err != nil {
		return nil, err
	}
	return result, nil
}

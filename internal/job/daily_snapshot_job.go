package job

import (
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/redis"
	"DigitalOrganisms/internal/service"
	"context"
	log "log/slog"
	"time"
)

const (
	DailySnapshotJobName = "daily_snapshot"
	dailySnapshotLockTTL = 10 * time.Minute
)

// DailySnapshotJob 每天记录一次平台指标快照，多实例部署时靠分布式锁去重
type DailySnapshotJob struct {
	snapshotSvc service.SnapshotService
	runner      runner
}

func NewDailySnapshotJob(snapshotSvc service.SnapshotService, jobRuns mongo.JobRunRepo) *DailySnapshotJob {
	return &DailySnapshotJob{
		snapshotSvc: snapshotSvc,
		runner:      newRunner(DailySnapshotJobName, jobRuns),
	}
}

func (s *DailySnapshotJob) Run() {
	s.runner.run(s.execute)
}

func (s *DailySnapshotJob) execute(ctx context.Context) (map[string]any, error) {
	date := time.Now().UTC().Format(time.DateOnly)
	lockKey := consts.DailySnapshotLock + date
	lockValue := ctx.Value(logger.TraceIDKey)

	ok, err := redis.TryLock(ctx, lockKey, lockValue, dailySnapshotLockTTL, 1)
	if err != nil {
		// 锁不可用时仍然记录，写入本身是幂等的
		log.WarnContext(ctx, "snapshot lock unavailable", "err", err)
	} else if !ok {
		return map[string]any{"date": date}, errSkipped
	} else {
		defer redis.UnLock(context.WithoutCancel(ctx), lockKey, lockValue)
	}

	snapshot, err := s.snapshotSvc.RecordDailyMetrics(ctx)
	if err != nil {
		return map[string]any{"date": date}, err
	}
	return map[string]any{
		"date":          snapshot.MetricDate,
		"snapshot_id":   snapshot.ID,
		"total_members": snapshot.TotalMembers,
	}, nil
}

package job

import (
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/observability"
	"DigitalOrganisms/internal/pkg/redis"
	"DigitalOrganisms/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const (
	UsageLogCleanupJobName = "usage_log_cleanup"
	usageLogCleanupLockTTL = 30 * time.Minute
)

// Archiver 归档目标，生产环境为 MinIO
type Archiver interface {
	PutJSON(ctx context.Context, objectName string, payload []byte) error
}

// UsageLogCleanupJob 将超过保留期的调用日志分批归档后删除
type UsageLogCleanupJob struct {
	usageLogRepo repository.UsageLogRepo
	archiver     Archiver
	retention    time.Duration
	batchSize    int
	runner       runner
	now          func() time.Time
}

func NewUsageLogCleanupJob(
	usageLogRepo repository.UsageLogRepo,
	archiver Archiver,
	retentionDays int,
	batchSize int,
	jobRuns mongo.JobRunRepo,
) *UsageLogCleanupJob {
	return &UsageLogCleanupJob{
		usageLogRepo: usageLogRepo,
		archiver:     archiver,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
		batchSize:    batchSize,
		runner:       newRunner(UsageLogCleanupJobName, jobRuns),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *UsageLogCleanupJob) Run() {
	s.runner.run(s.execute)
}

func (s *UsageLogCleanupJob) execute(ctx context.Context) (map[string]any, error) {
	lockValue := ctx.Value(logger.TraceIDKey)
	ok, err := redis.TryLock(ctx, consts.UsageLogCleanupLock, lockValue, usageLogCleanupLockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSkipped
	}
	defer redis.UnLock(context.WithoutCancel(ctx), consts.UsageLogCleanupLock, lockValue)

	cutoff := s.now().Add(-s.retention)
	detail := map[string]any{"cutoff": cutoff.Format(time.RFC3339)}
	archived, err := s.sweep(ctx, cutoff)
	detail["archived"] = archived
	return detail, err
}

// sweep 先归档再删除，归档失败立即停止，保证未归档的日志不会被删
func (s *UsageLogCleanupJob) sweep(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	prefix := "usage-logs/" + cutoff.Format(time.DateOnly)

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := s.usageLogRepo.FindExpiredBatch(ctx, cutoff, s.batchSize)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		payload, err := json.Marshal(batch)
		if err != nil {
			return total, err
		}
		objectName := fmt.Sprintf("%s/%d-%d.json", prefix, batch[0].ID, batch[len(batch)-1].ID)
		if err = s.archiver.PutJSON(ctx, objectName, payload); err != nil {
			return total, err
		}

		ids := make([]uint64, 0, len(batch))
		for _, l := range batch {
			ids = append(ids, l.ID)
		}
		deleted, err := s.usageLogRepo.DeleteByIDs(ctx, ids)
		if err != nil {
			return total, err
		}

		total += deleted
		observability.M.UsageLogsArchived.Add(float64(deleted))
		log.InfoContext(ctx, "usage logs archived", "object", objectName, "count", deleted)

		if len(batch) < s.batchSize {
			return total, nil
		}
	}
}

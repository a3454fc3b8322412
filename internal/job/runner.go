package job

import (
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/observability"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const recordTimeout = 5 * time.Second

// errSkipped 未拿到锁时跳过本次执行
var errSkipped = errors.New("job skipped")

type jobFunc func(ctx context.Context) (map[string]any, error)

// runner 负责单次任务执行的 trace_id、panic 恢复、执行记录与指标
type runner struct {
	name    string
	jobRuns mongo.JobRunRepo
}

func newRunner(name string, jobRuns mongo.JobRunRepo) runner {
	return runner{name: name, jobRuns: jobRuns}
}

func (r runner) run(fn jobFunc) *mongo.JobRunModel {
	traceID := "job-" + r.name + "-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	record := &mongo.JobRunModel{
		Job:       r.name,
		TraceID:   traceID,
		StartedAt: time.Now().UTC(),
	}
	log.InfoContext(ctx, "job started", "job", r.name)

	detail, err := r.safeCall(ctx, fn)

	record.FinishedAt = time.Now().UTC()
	record.DurationMs = record.FinishedAt.Sub(record.StartedAt).Milliseconds()
	record.Detail = detail
	switch {
	case errors.Is(err, errSkipped):
		record.Status = mongo.JobRunStatusSkipped
		log.InfoContext(ctx, "job skipped", "job", r.name)
	case err != nil:
		record.Status = mongo.JobRunStatusFailed
		record.Error = err.Error()
		log.ErrorContext(ctx, "job failed", "job", r.name, "err", err)
	default:
		record.Status = mongo.JobRunStatusSuccess
		log.InfoContext(ctx, "job finished", "job", r.name, "duration_ms", record.DurationMs)
	}

	observability.M.JobRunsTotal.WithLabelValues(r.name, record.Status).Inc()
	observability.M.JobDuration.WithLabelValues(r.name).Observe(record.FinishedAt.Sub(record.StartedAt).Seconds())
	if record.Status == mongo.JobRunStatusSuccess {
		observability.M.JobLastSuccess.WithLabelValues(r.name).Set(float64(record.FinishedAt.Unix()))
	}

	r.save(ctx, record)
	return record
}

func (r runner) safeCall(ctx context.Context, fn jobFunc) (detail map[string]any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// save 执行记录写入失败只打日志
func (r runner) save(ctx context.Context, record *mongo.JobRunModel) {
	if r.jobRuns == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := r.jobRuns.CreateJobRun(saveCtx, record); err != nil {
		log.WarnContext(ctx, "save job run error", "job", r.name, "err", err)
	}
}

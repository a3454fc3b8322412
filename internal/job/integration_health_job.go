package job

import (
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/mongo"
	"DigitalOrganisms/internal/pkg/observability"
	"DigitalOrganisms/internal/pkg/probe"
	"DigitalOrganisms/internal/pkg/redis"
	"DigitalOrganisms/internal/service"
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	IntegrationHealthJobName = "integration_health"
	healthProbeLockTTL       = 30 * time.Minute
)

// IntegrationHealthJob 探测所有带地址的集成并回写健康状态
type IntegrationHealthJob struct {
	integrationSvc service.IntegrationService
	prober         probe.Prober
	concurrency    int
	runner         runner
}

func NewIntegrationHealthJob(
	integrationSvc service.IntegrationService,
	prober probe.Prober,
	concurrency int,
	jobRuns mongo.JobRunRepo,
) *IntegrationHealthJob {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &IntegrationHealthJob{
		integrationSvc: integrationSvc,
		prober:         prober,
		concurrency:    concurrency,
		runner:         newRunner(IntegrationHealthJobName, jobRuns),
	}
}

func (s *IntegrationHealthJob) Run() {
	s.runner.run(s.execute)
}

func (s *IntegrationHealthJob) execute(ctx context.Context) (map[string]any, error) {
	lockValue := ctx.Value(logger.TraceIDKey)
	ok, err := redis.TryLock(ctx, consts.HealthProbeLock, lockValue, healthProbeLockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSkipped
	}
	defer redis.UnLock(context.WithoutCancel(ctx), consts.HealthProbeLock, lockValue)

	targets, err := s.integrationSvc.ListProbeTargets(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	counts := make(map[string]any, 4)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, target := range targets {
		g.Go(func() error {
			status, probeErr := s.prober.Probe(gCtx, target.APIEndpoint)
			if probeErr != nil {
				log.WarnContext(gCtx, "integration probe failed", "integration_id", target.ID, "err", probeErr)
			}
			observability.M.IntegrationProbes.WithLabelValues(status).Inc()

			mu.Lock()
			n, _ := counts[status].(int)
			counts[status] = n + 1
			mu.Unlock()

			err := s.integrationSvc.UpdateIntegrationHealth(gCtx, target.ID, status)
			if errors.Is(err, service.ErrIntegrationNotFound) {
				// 探测期间被删除
				return nil
			}
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return counts, err
	}

	counts["probed"] = len(targets)
	return counts, nil
}

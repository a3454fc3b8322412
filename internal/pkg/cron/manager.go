package cron

import (
	"DigitalOrganisms/internal/api/config"
	"DigitalOrganisms/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// slogCronLogger 把 cron 内部日志转到 slog
type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}

type Manager struct {
	engine               *cron.Cron
	schedules            config.CronConfig
	dailySnapshotJob     *job.DailySnapshotJob
	usageLogCleanupJob   *job.UsageLogCleanupJob
	integrationHealthJob *job.IntegrationHealthJob
}

func NewCronManager(
	schedules config.CronConfig,
	dailySnapshotJob *job.DailySnapshotJob,
	usageLogCleanupJob *job.UsageLogCleanupJob,
	integrationHealthJob *job.IntegrationHealthJob,
) *Manager {
	logger := slogCronLogger{}
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		schedules:            schedules,
		dailySnapshotJob:     dailySnapshotJob,
		usageLogCleanupJob:   usageLogCleanupJob,
		integrationHealthJob: integrationHealthJob,
	}
}

// RegisterJobs 注册定时任务，表达式带秒字段
func (s *Manager) RegisterJobs() error {
	entries := []struct {
		name string
		spec string
		job  cron.Job
	}{
		{job.DailySnapshotJobName, s.schedules.DailySnapshot, s.dailySnapshotJob},
		{job.UsageLogCleanupJobName, s.schedules.UsageLogCleanup, s.usageLogCleanupJob},
		{job.IntegrationHealthJobName, s.schedules.IntegrationHealth, s.integrationHealthJob},
	}
	for _, e := range entries {
		if _, err := s.engine.AddJob(e.spec, e.job); err != nil {
			return fmt.Errorf("register %s (%q): %w", e.name, e.spec, err)
		}
		log.Info("Cron job registered", "job", e.name, "spec", e.spec)
	}
	return nil
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待运行中的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

package cron

import (
	"fmt"
	log "log/slog"
	"time"
)

// InitCron 注册并启动调度，逐条打印下次触发时间
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("init cron: %w", err)
	}
	mgr.Start()
	for _, entry := range mgr.engine.Entries() {
		log.Info("Cron job scheduled", "entry_id", entry.ID, "next", entry.Next.Format(time.RFC3339))
	}
	log.Info("Cron jobs started", "entries", mgr.Entries())
	return nil
}

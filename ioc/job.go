package ioc

import (
	"context"

	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/inventory"
	"nomassess/internal/job"
)

// InitScheduler 构建主数据刷新调度器。
func InitScheduler(cfg app.Config, store *inventory.Store, logger *zap.Logger) *job.Scheduler {
	var refreshFn func(context.Context) error
	if store != nil {
		refreshFn = store.Refresh
	}
	return job.NewScheduler(cfg, refreshFn, logger)
}

// InitHeartbeat 构建每小时日志任务。
func InitHeartbeat(logger *zap.Logger) *job.Heartbeat {
	return job.NewHeartbeat(logger)
}

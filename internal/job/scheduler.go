package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nomassess/internal/app"
)

const defaultCronSpec = "0 7 * * *"

// Scheduler 按 cron 表达式定时刷新主数据快照。
type Scheduler struct {
	cronExpr    string
	logger      *zap.Logger
	cron        *cron.Cron
	refreshFunc func(context.Context) error
	parent      context.Context
	mu          sync.Mutex
	running     bool
}

// NewScheduler 根据配置构建刷新调度器。
func NewScheduler(cfg app.Config, refreshFunc func(context.Context) error, logger *zap.Logger) *Scheduler {
	spec := strings.TrimSpace(cfg.Inventory.RefreshCron)
	if spec == "" {
		spec = defaultCronSpec
	}
	return &Scheduler{cronExpr: spec, logger: logger, refreshFunc: refreshFunc}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil {
		return func() {}
	}
	s.parent = parent
	c := cron.New()
	id, err := c.AddFunc(s.cronExpr, s.runOnce)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to register refresh job", zap.String("cron", s.cronExpr), zap.Error(err))
		}
		return func() {}
	}
	s.cron = c
	c.Start()
	if s.logger != nil {
		entry := c.Entry(id)
		s.logger.Info("refresh scheduler started", zap.String("cron", s.cronExpr), zap.Time("next", entry.Next))
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := s.cron.Stop()
			<-ctx.Done()
			if s.logger != nil {
				s.logger.Info("refresh scheduler stopped")
			}
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

func (s *Scheduler) runOnce() {
	if s.refreshFunc == nil {
		if s.logger != nil {
			s.logger.Warn("refresh function not configured")
		}
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("previous refresh still running, skip current schedule")
		}
		return
	}
	s.running = true
	s.mu.Unlock()

	start := time.Now()
	runCtx := context.Background()
	if s.parent != nil {
		select {
		case <-s.parent.Done():
			if s.logger != nil {
				s.logger.Info("scheduler context cancelled, skip refresh")
			}
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		default:
		}
		runCtx = s.parent
	}
	err := s.refreshFunc(runCtx)
	elapsed := time.Since(start)
	if s.logger != nil {
		if err != nil {
			s.logger.Error("scheduled refresh failed", zap.Duration("duration", elapsed), zap.Error(err))
		} else {
			s.logger.Info("scheduled refresh completed", zap.Duration("duration", elapsed))
		}
	}
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

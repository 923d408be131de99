package job

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Heartbeat 每小时输出日志，主要用于健康探针或占位任务。
type Heartbeat struct {
	logger *zap.Logger
	cron   *cron.Cron
}

func NewHeartbeat(logger *zap.Logger) *Heartbeat {
	return &Heartbeat{logger: logger}
}

// Start 启动按小时执行的日志任务，返回停止函数。
func (h *Heartbeat) Start(parent context.Context) context.CancelFunc {
	if h == nil {
		return func() {}
	}
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if h.logger != nil {
			h.logger.Info("hourly job heartbeat", zap.Time("timestamp", time.Now()))
		}
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to register hourly job", zap.Error(err))
		}
		return func() {}
	}
	h.cron = c
	c.Start()
	if h.logger != nil {
		h.logger.Info("hourly job started")
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := h.cron.Stop()
			<-ctx.Done()
			if h.logger != nil {
				h.logger.Info("hourly job stopped")
			}
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

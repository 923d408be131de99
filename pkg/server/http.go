package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/inventory"
	"nomassess/internal/job"
	"nomassess/internal/metrics"
)

// HTTPServer 封装 HTTP 服务运行所需的依赖。
type HTTPServer struct {
	Engine *gin.Engine
	Logger *zap.Logger
	Config app.Config
	Store  *inventory.Store
	Job    *job.Scheduler
	Hourly *job.Heartbeat
}

// NewHTTPServer 构建 HTTPServer。
func NewHTTPServer(engine *gin.Engine, logger *zap.Logger, cfg app.Config, store *inventory.Store, scheduler *job.Scheduler, hourly *job.Heartbeat) *HTTPServer {
	metrics.MustRegister(prometheus.DefaultRegisterer)
	return &HTTPServer{
		Engine: engine,
		Logger: logger,
		Config: cfg,
		Store:  store,
		Job:    scheduler,
		Hourly: hourly,
	}
}

// Run 启动 HTTP 服务及相关后台任务。
func (s *HTTPServer) Run(ctx context.Context) error {
	listen := strings.TrimSpace(s.Config.HTTP.Listen)
	if listen == "" {
		listen = ":8080"
	}

	cancelJob := func() {}
	if s.Job != nil {
		cancelJob = s.Job.Start(ctx)
		defer cancelJob()
	}
	cancelHourly := func() {}
	if s.Hourly != nil {
		cancelHourly = s.Hourly.Start(ctx)
		defer cancelHourly()
	}

	// 启动时预热主数据。失败不阻断启动，评估请求会以 503 拒绝直至刷新成功。
	if s.Config.Inventory.WarmupLoad && s.Store != nil {
		if err := s.Store.Refresh(ctx); err != nil {
			if s.Logger != nil {
				s.Logger.Error("initial inventory load failed", zap.Error(err))
			}
		} else if s.Logger != nil {
			s.Logger.Info("initial inventory load completed")
		}
	} else if s.Logger != nil {
		s.Logger.Info("initial inventory load skipped by configuration")
	}

	if s.Logger != nil {
		s.Logger.Info("http server starting", zap.String("listen", listen))
	}
	return s.Engine.Run(listen)
}

// Shutdown 释放资源。
func (s *HTTPServer) Shutdown(context.Context) {
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
}

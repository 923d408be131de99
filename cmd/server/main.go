package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/assess"
	"nomassess/internal/inventory"
	"nomassess/internal/job"
	"nomassess/internal/logging"
	"nomassess/internal/nomination"
	"nomassess/internal/router"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("load config failed: %v\n", err)
		return
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Printf("init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	listen := cfg.HTTP.Listen
	if strings.TrimSpace(listen) == "" {
		listen = ":8080"
	}

	client, err := buildInventoryClient(cfg)
	if err != nil {
		logger.Fatal("create inventory client failed", zap.Error(err))
	}
	store := inventory.NewStore(client, cfg.Inventory.Retry.Attempts,
		time.Duration(cfg.Inventory.Retry.BackoffSeconds)*time.Second, logger)

	if cfg.Inventory.WarmupLoad {
		if err := store.Refresh(ctx); err != nil {
			logger.Error("initial inventory load failed", zap.Error(err))
		} else {
			logger.Info("initial inventory load completed")
		}
	} else {
		logger.Info("initial inventory load skipped by configuration")
	}

	scheduler := job.NewScheduler(cfg, store.Refresh, logger)
	cancelRefresh := scheduler.Start(ctx)
	defer cancelRefresh()

	assessor := assess.NewAssessor(store, assess.VerdictConfig{
		MinDemand:           cfg.Assess.MinDemand,
		SpareThreshold:      cfg.Assess.SpareThreshold,
		SpareInclusive:      cfg.Assess.SpareInclusive,
		Override25Threshold: cfg.Assess.Override25Threshold,
		Override25Inclusive: cfg.Assess.Override25Inclusive,
		LoopThreshold:       cfg.Assess.LoopThreshold,
	}, cfg.Assess.ParallelWorkers, logger)
	fetcher := nomination.NewFetcher(time.Duration(cfg.Nomination.FetchTimeoutSeconds) * time.Second)

	handler := router.NewAssessHandler(assessor, fetcher, logger)
	engine := router.NewEngine(handler)

	logger.Info("http server starting", zap.String("listen", listen))
	if err := engine.Run(listen); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}

func buildInventoryClient(cfg app.Config) (inventory.Client, error) {
	if strings.TrimSpace(cfg.Inventory.SheetURL) == "" {
		return nil, fmt.Errorf("inventory.sheet_url is required")
	}
	var tokenSource inventory.TokenSource
	if cfg.Inventory.AuthEndpoint != "" && cfg.Inventory.Username != "" {
		ts, err := inventory.NewPasswordTokenSource(inventory.PasswordTokenConfig{
			Endpoint: cfg.Inventory.AuthEndpoint,
			Username: cfg.Inventory.Username,
			Password: cfg.Inventory.Password,
			Timeout:  5 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		tokenSource = ts
	} else if cfg.Inventory.StaticToken != "" {
		tokenSource = &inventory.StaticTokenSource{Value: cfg.Inventory.StaticToken}
	}
	return inventory.NewHTTPClient(inventory.HTTPConfig{
		SheetURL:       cfg.Inventory.SheetURL,
		TokenSource:    tokenSource,
		AuthHeaderName: cfg.Inventory.AuthHeader,
	})
}

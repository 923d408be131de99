package ioc

import (
	"time"

	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/assess"
	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
)

// InitVerdictConfig 把配置文件里的阈值映射为评估规则配置，未填项走默认值。
func InitVerdictConfig(cfg app.Config) assess.VerdictConfig {
	return assess.VerdictConfig{
		MinDemand:           cfg.Assess.MinDemand,
		SpareThreshold:      cfg.Assess.SpareThreshold,
		SpareInclusive:      cfg.Assess.SpareInclusive,
		Override25Threshold: cfg.Assess.Override25Threshold,
		Override25Inclusive: cfg.Assess.Override25Inclusive,
		LoopThreshold:       cfg.Assess.LoopThreshold,
	}
}

// InitAssessor 构建评估器。
func InitAssessor(store *inventory.Store, vcfg assess.VerdictConfig, cfg app.Config, logger *zap.Logger) *assess.Assessor {
	return assess.NewAssessor(store, vcfg, cfg.Assess.ParallelWorkers, logger)
}

// InitNominationFetcher 构建申请表拉取器。
func InitNominationFetcher(cfg app.Config) *nomination.Fetcher {
	return nomination.NewFetcher(time.Duration(cfg.Nomination.FetchTimeoutSeconds) * time.Second)
}

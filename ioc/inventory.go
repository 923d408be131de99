package ioc

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/inventory"
)

// InitInventoryClient 构建主数据客户端。未配置表格地址时退化为空的静态实现，
// 此时评估请求会因快照缺失被拒绝。
func InitInventoryClient(cfg app.Config) (inventory.Client, error) {
	sheetURL := strings.TrimSpace(cfg.Inventory.SheetURL)
	if sheetURL == "" {
		return &inventory.StaticClient{Err: inventory.ErrSnapshotUnavailable}, nil
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
		SheetURL:       sheetURL,
		TokenSource:    tokenSource,
		AuthHeaderName: cfg.Inventory.AuthHeader,
	})
}

// InitInventoryStore 构建主数据快照存储。
func InitInventoryStore(client inventory.Client, cfg app.Config, logger *zap.Logger) *inventory.Store {
	backoff := time.Duration(cfg.Inventory.Retry.BackoffSeconds) * time.Second
	return inventory.NewStore(client, cfg.Inventory.Retry.Attempts, backoff, logger)
}

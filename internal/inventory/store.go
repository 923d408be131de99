package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"nomassess/internal/metrics"
	"nomassess/internal/util"
	pkgutil "nomassess/pkg/util"
)

// ErrSnapshotUnavailable 表示主数据尚未加载成功，评估必须拒绝执行。
var ErrSnapshotUnavailable = errors.New("inventory snapshot unavailable")

// Store 持有当前主数据快照。快照整体不可变，刷新时原子替换。
type Store struct {
	client  Client
	logger  *zap.Logger
	retries int
	backoff time.Duration

	mu       sync.RWMutex
	snapshot *Table
	lastHash string
}

// NewStore 构建快照存储。
func NewStore(client Client, retries int, backoff time.Duration, logger *zap.Logger) *Store {
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Store{client: client, logger: logger, retries: retries, backoff: backoff}
}

// Snapshot 返回当前快照。尚未加载成功时返回 ErrSnapshotUnavailable，
// 绝不静默退化为空表。
func (s *Store) Snapshot() (Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Table{}, ErrSnapshotUnavailable
	}
	return *s.snapshot, nil
}

// Refresh 重新拉取主数据并替换快照，失败按退避重试。
// 内容未变化时保留旧快照（及其加载时间）。
func (s *Store) Refresh(ctx context.Context) error {
	start := time.Now()
	var tbl Table
	err := util.Retry(ctx, s.retries, s.backoff, func() error {
		fetched, ferr := s.client.FetchTable(ctx)
		if ferr != nil {
			return ferr
		}
		tbl = fetched
		return nil
	})
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RefreshErrors.Inc()
		return fmt.Errorf("刷新主数据失败: %w", err)
	}
	// 空表视为上游异常，绝不替换已有快照
	if tbl.Len() == 0 {
		metrics.RefreshErrors.Inc()
		return fmt.Errorf("刷新主数据失败: %w", ErrEmptyTable)
	}

	rows := make([]map[string]any, 0, len(tbl.Records))
	for _, rec := range tbl.Records {
		rows = append(rows, rec.Fields)
	}
	hash := pkgutil.HashRows(rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil && hash == s.lastHash {
		if s.logger != nil {
			s.logger.Info("inventory unchanged, keeping snapshot",
				zap.Int("rows", s.snapshot.Len()))
		}
		return nil
	}
	s.snapshot = &tbl
	s.lastHash = hash
	if s.logger != nil {
		s.logger.Info("inventory snapshot refreshed",
			zap.Int("rows", tbl.Len()),
			zap.Duration("duration", time.Since(start)))
	}
	return nil
}

package assess

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nomassess/internal/inventory"
	"nomassess/internal/metrics"
	"nomassess/internal/nomination"
	pkgutil "nomassess/pkg/util"
)

// Assessor 串起关联、归一化与规则评估，对外提供单次评估入口。
// 主数据快照由 Store 注入，评估过程不持有任何跨请求状态。
type Assessor struct {
	store   *inventory.Store
	cfg     VerdictConfig
	workers int
	logger  *zap.Logger
}

// NewAssessor 构建评估器。workers 大于 1 时按分片并行处理，输出顺序不变。
func NewAssessor(store *inventory.Store, cfg VerdictConfig, workers int, logger *zap.Logger) *Assessor {
	if workers <= 0 {
		workers = 1
	}
	return &Assessor{store: store, cfg: cfg, workers: workers, logger: logger}
}

// Result 为一次评估的完整产物。
type Result struct {
	RunID             string           `json:"run_id"`
	Columns           []string         `json:"columns"`
	Records           []AssessedRecord `json:"records"`
	InventoryLoadedAt time.Time        `json:"inventory_loaded_at"`
}

// Run 对整张申请表执行关联与评估。
// 行间无数据依赖，分片并行只是吞吐优化，结果仍按输入顺序排列。
func (a *Assessor) Run(ctx context.Context, noms nomination.Table, choices map[string]string) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	inv, err := a.store.Snapshot()
	if err != nil {
		metrics.AssessErrors.Inc()
		return Result{}, err
	}

	combined, err := Join(noms, inv, choices)
	if err != nil {
		metrics.AssessErrors.Inc()
		return Result{}, err
	}

	columns := JoinedColumns(noms, inv)
	records := make([]AssessedRecord, len(combined))

	indexes := make([]int, len(combined))
	for i := range indexes {
		indexes[i] = i
	}
	batchSize := (len(indexes) + a.workers - 1) / a.workers
	group, _ := errgroup.WithContext(ctx)
	for _, chunk := range pkgutil.Batch(indexes, batchSize) {
		chunk := chunk
		group.Go(func() error {
			for _, i := range chunk {
				rec, m := Normalize(combined[i], columns)
				node := NodeVerdict(a.cfg, m)
				loop := LoopVerdict(a.cfg, m)
				rec.Fields[ColNodeAssessment] = node
				rec.Fields[ColLoopAssessment] = loop
				records[i] = AssessedRecord{
					CombinedRecord: rec,
					NodeAssessment: node,
					LoopAssessment: loop,
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		metrics.AssessErrors.Inc()
		return Result{}, err
	}

	columns = append(columns, ColNodeAssessment, ColLoopAssessment)

	elapsed := time.Since(start)
	metrics.AssessDuration.Observe(elapsed.Seconds())
	metrics.AssessedRows.Add(float64(len(records)))
	if a.logger != nil {
		a.logger.Info("assessment completed",
			zap.String("run_id", runID),
			zap.Int("rows", len(records)),
			zap.Int("inventory_rows", inv.Len()),
			zap.Duration("duration", elapsed))
	}

	return Result{
		RunID:             runID,
		Columns:           columns,
		Records:           records,
		InventoryLoadedAt: inv.LoadedAt,
	}, nil
}

// Preflight 返回申请表中需要消歧的关联键及候选网元，供调用方先行收集选择。
func (a *Assessor) Preflight(noms nomination.Table) ([]Ambiguity, error) {
	inv, err := a.store.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("preflight: %w", err)
	}
	return DetectAmbiguities(noms, inv), nil
}

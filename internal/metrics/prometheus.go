package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AssessDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nomassess_assess_duration_seconds",
		Help:    "单次评估耗时",
		Buckets: prometheus.DefBuckets,
	})

	AssessErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nomassess_assess_errors_total",
		Help: "评估失败次数",
	})

	AssessedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nomassess_assessed_rows_total",
		Help: "累计评估的申请行数",
	})

	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nomassess_inventory_refresh_duration_seconds",
		Help:    "主数据刷新耗时",
		Buckets: prometheus.DefBuckets,
	})

	RefreshErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nomassess_inventory_refresh_errors_total",
		Help: "主数据刷新失败次数",
	})
)

// MustRegister 注册指标，在服务启动时调用一次。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(AssessDuration, AssessErrors, AssessedRows, RefreshDuration, RefreshErrors)
}

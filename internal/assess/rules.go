package assess

import "strings"

// 结论文案与上游消费方约定一致，不要随意改动。
const (
	VerdictHeadroom      = "With Headroom"
	VerdictNoDemand      = "No Port Demand"
	VerdictLoopUpgrade   = "Requires Loop Upgrade"
	FlagPortAugmentation = "Requires Port Augmentation"

	verdictSeparator = " & "
)

// VerdictConfig 控制评估规则的阈值与边界口径。
//
// 历史版本在两处边界上并不一致：富余端口判定出现过 ≤2 与 <2 两种写法，
// 25GE 短路出现过 ≥3 与 >2 两种写法。这里默认采用后期的严格口径
// （spare < 2 判失败、25GE > 2 触发短路），Inclusive 开关可切回早期口径。
type VerdictConfig struct {
	MinDemand           float64 `json:"min_demand"`
	SpareThreshold      float64 `json:"spare_threshold"`
	SpareInclusive      bool    `json:"spare_inclusive"`
	Override25Threshold float64 `json:"override_25ge_threshold"`
	Override25Inclusive bool    `json:"override_25ge_inclusive"`
	LoopThreshold       float64 `json:"loop_threshold"`
}

// DefaultVerdictConfig 提供默认阈值。
func DefaultVerdictConfig() VerdictConfig {
	return VerdictConfig{
		MinDemand:           1,
		SpareThreshold:      2,
		SpareInclusive:      false,
		Override25Threshold: 2,
		Override25Inclusive: false,
		LoopThreshold:       0.70,
	}
}

func (c VerdictConfig) withDefaults() VerdictConfig {
	def := DefaultVerdictConfig()
	if c.MinDemand <= 0 {
		c.MinDemand = def.MinDemand
	}
	if c.SpareThreshold <= 0 {
		c.SpareThreshold = def.SpareThreshold
	}
	if c.Override25Threshold <= 0 {
		c.Override25Threshold = def.Override25Threshold
	}
	if c.LoopThreshold <= 0 {
		c.LoopThreshold = def.LoopThreshold
	}
	return c
}

func (c VerdictConfig) spareFails(spare float64) bool {
	if c.SpareInclusive {
		return spare <= c.SpareThreshold
	}
	return spare < c.SpareThreshold
}

func (c VerdictConfig) override25(ports float64) bool {
	if c.Override25Inclusive {
		return ports >= c.Override25Threshold
	}
	return ports > c.Override25Threshold
}

// nodeRule 为有序决策表的一项，命中即返回结论并停止后续规则。
type nodeRule struct {
	name string
	eval func(cfg VerdictConfig, m Metrics) (string, bool)
}

// 节点评估的规则表。调整规则顺序或增删规则改这里即可，不动控制流。
var nodeRules = []nodeRule{
	{
		// 25GE 容量充足时无条件判富余，短路其余检查
		name: "25ge-headroom-override",
		eval: func(cfg VerdictConfig, m Metrics) (string, bool) {
			if cfg.override25(m.Inv25G) {
				return VerdictHeadroom, true
			}
			return "", false
		},
	},
	{
		// 1G/10G 两对需求-容量各自独立检查，命中的告警合并输出
		name: "port-augmentation",
		eval: func(cfg VerdictConfig, m Metrics) (string, bool) {
			var flags []string
			if m.GEDemand >= cfg.MinDemand && cfg.spareFails(m.Inv1G-m.GEDemand) {
				flags = append(flags, FlagPortAugmentation)
			}
			if m.TenGEDemand >= cfg.MinDemand && cfg.spareFails(m.Inv10G-m.TenGEDemand) {
				flags = append(flags, FlagPortAugmentation)
			}
			if len(flags) == 0 {
				return "", false
			}
			return strings.Join(flags, verdictSeparator), true
		},
	},
	{
		name: "demand-with-headroom",
		eval: func(cfg VerdictConfig, m Metrics) (string, bool) {
			if m.GEDemand >= cfg.MinDemand || m.TenGEDemand >= cfg.MinDemand {
				return VerdictHeadroom, true
			}
			return "", false
		},
	},
	{
		name: "no-port-demand",
		eval: func(VerdictConfig, Metrics) (string, bool) {
			return VerdictNoDemand, true
		},
	},
}

// NodeVerdict 按规则表顺序评估节点端口结论，首个命中生效。
// 纯函数，入参已归一化，缺失字段等价于零值，永不失败。
func NodeVerdict(cfg VerdictConfig, m Metrics) string {
	cfg = cfg.withDefaults()
	for _, rule := range nodeRules {
		if verdict, ok := rule.eval(cfg, m); ok {
			return verdict
		}
	}
	return VerdictNoDemand
}

// LoopVerdict 评估环路利用率结论，与节点结论相互独立。
func LoopVerdict(cfg VerdictConfig, m Metrics) string {
	cfg = cfg.withDefaults()
	if m.LoopUtil >= cfg.LoopThreshold {
		return VerdictLoopUpgrade
	}
	return VerdictHeadroom
}

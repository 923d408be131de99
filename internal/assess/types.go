package assess

import "encoding/json"

// InvPrefix 为主数据字段并入联合记录时加的命名空间前缀，避免同名列冲突。
const InvPrefix = "Inv_"

// 评估结果写回的两个结论列。
const (
	ColNodeAssessment = "Node Assessment"
	ColLoopAssessment = "Loop Assessment"
)

// CombinedRecord 为一行申请与其选中主数据行的并集。
// 未匹配到主数据时 Matched 为 false，Inv_ 前缀字段整体缺席。
type CombinedRecord struct {
	Fields  map[string]any
	PlaID   string
	Matched bool
}

// Metrics 为归一化后的评估输入，全部字段已落为具体数值。
type Metrics struct {
	GEDemand    float64
	TenGEDemand float64
	Inv1G       float64
	Inv10G      float64
	Inv25G      float64
	LoopUtil    float64
}

// AssessedRecord 为终态产物：联合记录加两个结论字段，生成后不再修改。
type AssessedRecord struct {
	CombinedRecord
	NodeAssessment string
	LoopAssessment string
}

// MarshalJSON 按原始列展平输出，结论列包含在 Fields 内。
func (r AssessedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// Ambiguity 描述一个在申请表中出现、且在主数据中对应多行的关联键。
type Ambiguity struct {
	PlaID      string   `json:"pla_id"`
	Candidates []string `json:"candidates"`
}

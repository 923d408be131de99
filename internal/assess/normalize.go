package assess

import (
	"strconv"
	"strings"

	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
)

// 参与归一化的数值列。环路利用率单独按百分比策略处理。
var (
	numericColumns = []string{
		nomination.ColGEDemand,
		nomination.ColTenGEDemand,
		InvPrefix + inventory.ColGE1G,
		InvPrefix + inventory.ColGE10G,
		InvPrefix + inventory.ColGE25,
	}
	loopColumn = InvPrefix + inventory.ColLoopUtil
)

// Normalize 返回记录副本，所有指定数值列落为有限浮点数（缺失、空白、
// 无法解析一律补零），并抽取规则引擎所需的 Metrics。
// columns 为联合表的列集合：列在表中存在才会被写回记录。
func Normalize(rec CombinedRecord, columns []string) (CombinedRecord, Metrics) {
	fields := make(map[string]any, len(rec.Fields)+2)
	for col, v := range rec.Fields {
		fields[col] = v
	}

	inTable := make(map[string]bool, len(columns))
	for _, c := range columns {
		inTable[c] = true
	}

	for _, col := range numericColumns {
		if !inTable[col] {
			continue
		}
		fields[col] = ParseNumber(fields[col])
	}
	if inTable[loopColumn] {
		fields[loopColumn] = ParsePercent(fields[loopColumn])
	}

	out := rec
	out.Fields = fields
	m := Metrics{
		GEDemand:    ParseNumber(rec.Fields[nomination.ColGEDemand]),
		TenGEDemand: ParseNumber(rec.Fields[nomination.ColTenGEDemand]),
		Inv1G:       ParseNumber(rec.Fields[InvPrefix+inventory.ColGE1G]),
		Inv10G:      ParseNumber(rec.Fields[InvPrefix+inventory.ColGE10G]),
		Inv25G:      ParseNumber(rec.Fields[InvPrefix+inventory.ColGE25]),
		LoopUtil:    ParsePercent(rec.Fields[loopColumn]),
	}
	return out, m
}

// ParseNumber 宽松解析数值：缺失、空白、垃圾内容一律归零，从不报错。
func ParseNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParsePercent 解析环路利用率。文本值去掉 % 后除以 100（不带 % 的文本
// 同样除以 100，沿用既有口径）；数值类型视为已是小数，不再缩放。
func ParsePercent(v any) float64 {
	switch val := v.(type) {
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(val, "%", ""))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f / 100
	default:
		return ParseNumber(v)
	}
}

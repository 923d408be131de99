package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 主数据表的关键列名，与上游表格保持一致。
const (
	ColPlaID       = "PLA ID"
	ColTransportNE = "Transport NE"
	ColGE1G        = "GE_1G"
	ColGE10G       = "GE_10G"
	ColGE25        = "25GE"
	ColLoopUtil    = "MYCOM LOOP NORMAL UTILIZATION"
)

// ErrMissingKeyColumn 表示主数据缺少 PLA ID 列，整表不可用。
var ErrMissingKeyColumn = errors.New("inventory table has no PLA ID column")

// ErrEmptyTable 表示上游返回了空的主数据，属于获取失败而非表结构问题。
var ErrEmptyTable = errors.New("inventory table is empty")

// Record 为主数据一行，保留上游原始值（文本或数字）。
type Record struct {
	Fields map[string]any
}

// PlaID 返回归一化后的关联键。
func (r Record) PlaID() string {
	return NormalizeKey(r.Fields[ColPlaID])
}

// TransportNE 返回网元标识，用于同键多行时区分。
func (r Record) TransportNE() string {
	v, ok := r.Fields[ColTransportNE]
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// Table 为一次加载得到的不可变主数据快照。
// index 把归一化 PLA ID 映射到行位置，保持源顺序。
type Table struct {
	LoadedAt time.Time
	Columns  []string
	Records  []Record

	index map[string][]int
}

// NewTable 构建快照并建立关联键索引。缺少 PLA ID 列时整表拒绝。
func NewTable(columns []string, records []Record) (Table, error) {
	hasKey := false
	for _, c := range columns {
		if c == ColPlaID {
			hasKey = true
			break
		}
	}
	if !hasKey {
		return Table{}, ErrMissingKeyColumn
	}
	index := make(map[string][]int, len(records))
	for i, rec := range records {
		key := rec.PlaID()
		if key == "" {
			continue
		}
		index[key] = append(index[key], i)
	}
	return Table{LoadedAt: time.Now(), Columns: columns, Records: records, index: index}, nil
}

// FromCSV 把带表头的 CSV 行集合转换为快照。
func FromCSV(rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("主数据为空: %w", ErrEmptyTable)
	}
	header := rows[0]
	columns := make([]string, 0, len(header))
	for _, h := range header {
		columns = append(columns, strings.TrimSpace(h))
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]any, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		records = append(records, Record{Fields: fields})
	}
	return NewTable(columns, records)
}

// Lookup 返回关联键对应的全部行，保持源顺序。
func (t Table) Lookup(plaID string) []Record {
	positions, ok := t.index[NormalizeKey(plaID)]
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(positions))
	for _, pos := range positions {
		out = append(out, t.Records[pos])
	}
	return out
}

// Len 返回快照行数。
func (t Table) Len() int {
	return len(t.Records)
}

// NormalizeKey 把关联键统一为规范文本，保证 "123"、123、"123.0" 相等。
func NormalizeKey(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		s = strings.TrimSpace(fmt.Sprintf("%v", val))
	}
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return s
}

package nomination

import (
	"errors"
	"sort"
	"strings"
)

// 申请表的关键列名。
const (
	ColPlaID       = "PLA ID"
	ColGEDemand    = "GE Port Demand"
	ColTenGEDemand = "10GE Port Demand"
)

// ErrMissingKeyColumn 表示申请表缺少 PLA ID 列，整表不可用。
var ErrMissingKeyColumn = errors.New("nomination table has no PLA ID column")

// Record 为申请表一行，除关键列外全部透传。
type Record struct {
	Fields map[string]any
}

// Table 为一次请求解析出的申请表，行序即输入顺序。
type Table struct {
	Columns []string
	Records []Record
}

// NewTable 校验关键列后构建申请表。
func NewTable(columns []string, records []Record) (Table, error) {
	for _, c := range columns {
		if c == ColPlaID {
			return Table{Columns: columns, Records: records}, nil
		}
	}
	return Table{}, ErrMissingKeyColumn
}

// FromRows 由已解析的行集合（如 JSON 请求体）构建申请表。
// JSON 对象不保留列序，这里固定为关键列在前、其余按字典序。
func FromRows(rows []map[string]any) (Table, error) {
	if len(rows) == 0 {
		return Table{}, ErrMissingKeyColumn
	}
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			col = strings.TrimSpace(col)
			if col != "" {
				seen[col] = true
			}
		}
	}
	var columns []string
	for _, col := range []string{ColPlaID, ColGEDemand, ColTenGEDemand} {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}
	rest := make([]string, 0, len(seen))
	for col := range seen {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	columns = append(columns, rest...)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]any, len(row))
		for col, v := range row {
			fields[strings.TrimSpace(col)] = v
		}
		records = append(records, Record{Fields: fields})
	}
	return NewTable(columns, records)
}

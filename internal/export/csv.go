package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"nomassess/internal/assess"
)

// WriteCSV 把评估结果按列序写成带表头的 CSV，缺席字段输出空串。
func WriteCSV(w io.Writer, columns []string, records []assess.AssessedRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("写表头失败: %w", err)
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = formatCell(rec.Fields[col])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写数据行失败: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

package nomination

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nomassess/internal/sheet"
)

// ParseCSV 解析带表头的申请表 CSV。
// 数据行允许缺列，缺失字段按空值处理，由后续归一化统一补零。
func ParseCSV(r io.Reader) (Table, error) {
	rows, err := sheet.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	return fromCSVRows(rows)
}

func fromCSVRows(rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, ErrMissingKeyColumn
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

// Fetcher 按请求从共享表格链接拉取申请表。
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher 构建申请表拉取器。
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{httpClient: &http.Client{Timeout: timeout}}
}

// FetchSheet 把共享链接转换为 CSV 导出地址后拉取并解析。
func (f *Fetcher) FetchSheet(ctx context.Context, rawURL string) (Table, error) {
	exportURL, err := sheet.CSVExportURL(rawURL)
	if err != nil {
		return Table{}, fmt.Errorf("无效的表格链接: %w", err)
	}
	rows, err := sheet.FetchCSV(ctx, f.httpClient, exportURL, nil)
	if err != nil {
		return Table{}, fmt.Errorf("拉取申请表失败: %w", err)
	}
	return fromCSVRows(rows)
}

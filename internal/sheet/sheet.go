package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNotSheetURL 表示给定地址不是可识别的 Google 表格链接。
var ErrNotSheetURL = errors.New("not a google sheet url")

const sheetHost = "docs.google.com/spreadsheets/d/"

// CSVExportURL 将共享表格链接转换为直接的 CSV 导出地址。
func CSVExportURL(raw string) (string, error) {
	idx := strings.Index(raw, sheetHost)
	if idx < 0 {
		return "", ErrNotSheetURL
	}
	rest := raw[idx+len(sheetHost):]
	id := rest
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		id = rest[:slash]
	}
	if id == "" {
		return "", ErrNotSheetURL
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", id), nil
}

// FetchCSV 拉取 url 指向的 CSV 内容并解析为行。
// header 可设置为携带认证信息，key 为 header 名。
func FetchCSV(ctx context.Context, client *http.Client, url string, header map[string]string) ([][]string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取表格失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("表格接口返回状态码 %d", resp.StatusCode)
	}
	return ReadAll(resp.Body)
}

// ReadAll 解析 CSV 流。字段数允许逐行不同，缺列由上层按空值处理。
func ReadAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return rows, nil
}

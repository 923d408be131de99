package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"nomassess/internal/sheet"
)

// Client 抽象主数据来源。
type Client interface {
	FetchTable(ctx context.Context) (Table, error)
}

// StaticClient 用于测试或最小实现，直接返回内存中的快照。
type StaticClient struct {
	Table Table
	Err   error
}

// FetchTable 返回预设快照。
func (c *StaticClient) FetchTable(context.Context) (Table, error) {
	if c.Err != nil {
		return Table{}, c.Err
	}
	return c.Table, nil
}

// TokenSource 用于提供拉取主数据所需的 Token。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource 返回固定 Token，适用于测试或简易场景。
type StaticTokenSource struct {
	Value string
}

// Token 返回固定值。
func (s *StaticTokenSource) Token(context.Context) (string, error) {
	return s.Value, nil
}

// PasswordTokenSource 通过用户名/密码调用认证接口换取 Token，并带简单缓存。
type PasswordTokenSource struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// PasswordTokenConfig 配置基于用户名/密码的 TokenSource。
type PasswordTokenConfig struct {
	Endpoint   string
	Username   string
	Password   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewPasswordTokenSource 创建一个 PasswordTokenSource。
func NewPasswordTokenSource(cfg PasswordTokenConfig) (*PasswordTokenSource, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("token endpoint 不能为空")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("用户名和密码不能为空")
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &PasswordTokenSource{
		endpoint:   cfg.Endpoint,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: client,
	}, nil
}

// Token 实现 TokenSource 接口，必要时刷新 Token。
func (s *PasswordTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && time.Until(s.expiry) > 30*time.Second {
		return s.token, nil
	}
	return s.refresh(ctx)
}

func (s *PasswordTokenSource) refresh(ctx context.Context) (string, error) {
	body := map[string]string{
		"username": s.username,
		"password": s.password,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("编码 token 请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构建 token 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("获取 token 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token 接口返回状态码 %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("解析 token 响应失败: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token 响应中缺少 access_token")
	}
	expires := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	if tokenResp.ExpiresIn == 0 {
		expires = time.Now().Add(30 * time.Minute)
	}
	s.token = tokenResp.AccessToken
	s.expiry = expires
	return s.token, nil
}

// HTTPClient 实现 Client，从共享表格的 CSV 导出地址拉取主数据。
type HTTPClient struct {
	exportURL   string
	httpClient  *http.Client
	tokenSource TokenSource
	authHeader  string
}

// HTTPConfig 配置主数据 HTTP 客户端。
type HTTPConfig struct {
	SheetURL       string
	TokenSource    TokenSource
	Timeout        time.Duration
	CustomClient   *http.Client
	AuthHeaderName string
}

// NewHTTPClient 根据配置创建主数据客户端。SheetURL 可以是共享链接或直接的 CSV 地址。
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	raw := strings.TrimSpace(cfg.SheetURL)
	if raw == "" {
		return nil, errors.New("inventory sheet url 不能为空")
	}
	exportURL, err := sheet.CSVExportURL(raw)
	if err != nil {
		if !errors.Is(err, sheet.ErrNotSheetURL) {
			return nil, err
		}
		// 非 Google 表格链接时按普通 CSV 地址处理
		exportURL = raw
	}
	client := cfg.CustomClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	authHeader := cfg.AuthHeaderName
	if strings.TrimSpace(authHeader) == "" {
		authHeader = "Authorization"
	}
	return &HTTPClient{
		exportURL:   exportURL,
		httpClient:  client,
		tokenSource: cfg.TokenSource,
		authHeader:  authHeader,
	}, nil
}

// FetchTable 拉取最新主数据快照。
func (c *HTTPClient) FetchTable(ctx context.Context) (Table, error) {
	if c == nil {
		return Table{}, errors.New("inventory http client 未初始化")
	}
	header := map[string]string{}
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token(ctx)
		if err != nil {
			return Table{}, fmt.Errorf("获取 token 失败: %w", err)
		}
		if token != "" {
			header[c.authHeader] = "Bearer " + token
		}
	}
	rows, err := sheet.FetchCSV(ctx, c.httpClient, c.exportURL, header)
	if err != nil {
		return Table{}, fmt.Errorf("拉取主数据失败: %w", err)
	}
	return FromCSV(rows)
}

package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Inventory struct {
	SheetURL     string `yaml:"sheet_url"`
	AuthEndpoint string `yaml:"auth_endpoint"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	StaticToken  string `yaml:"static_token"`
	AuthHeader   string `yaml:"auth_header"`
	RefreshCron  string `yaml:"refresh_cron"`
	WarmupLoad   bool   `yaml:"warmup_load"`
	Retry        Retry  `yaml:"retry"`
}

type Retry struct {
	Attempts       int `yaml:"attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

type Nomination struct {
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

type Assess struct {
	ParallelWorkers     int     `yaml:"parallel_workers"`
	MinDemand           float64 `yaml:"min_demand"`
	SpareThreshold      float64 `yaml:"spare_threshold"`
	SpareInclusive      bool    `yaml:"spare_inclusive"`
	Override25Threshold float64 `yaml:"override_25ge_threshold"`
	Override25Inclusive bool    `yaml:"override_25ge_inclusive"`
	LoopThreshold       float64 `yaml:"loop_threshold"`
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Log        Log        `yaml:"log"`
	Inventory  Inventory  `yaml:"inventory"`
	Nomination Nomination `yaml:"nomination"`
	Assess     Assess     `yaml:"assess"`
}

// LoadConfig 从文件加载配置。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}

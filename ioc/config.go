package ioc

import (
	"os"

	"nomassess/internal/app"
)

const (
	defaultConfigPath = "configs/config.yaml"
	configPathEnv     = "NOMASSESS_CONFIG"
)

// InitConfig 读取应用配置，路径可用环境变量覆盖。
func InitConfig() (app.Config, error) {
	path := os.Getenv(configPathEnv)
	if path == "" {
		path = defaultConfigPath
	}
	return app.LoadConfig(path)
}

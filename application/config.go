package application

import (
	"github.com/LUBANX/go-luban-framework/logger"
)

// AppConfig 框架级配置（仅包含框架自身的配置项）
//
// 模块自身的业务配置通过清单 params 或 "config" 服务读取，
// 不在这里出现
type AppConfig struct {
	// 应用名（注入日志）
	Name string `mapstructure:"name"`

	// 运行环境（dev/test/prod，仅作标记）
	Env string `mapstructure:"env"`

	// 模块发现配置
	Modules ModulesConfig `mapstructure:"modules"`

	// 日志配置（可不配置，使用默认值）
	Logger *logger.ManagerConfig `mapstructure:"logger,omitempty"`

	// 扩展点异步池大小（0 使用默认值）
	ExtensionPoolSize int `mapstructure:"extension_pool_size"`
}

// ModulesConfig 模块发现配置
type ModulesConfig struct {
	// Locations 清单搜索目录列表（递归扫描）
	Locations []string `mapstructure:"locations"`
}

// loggerConfig 返回日志配置（未配置时给默认值，并带入应用名）
func (c *AppConfig) loggerConfig() logger.ManagerConfig {
	cfg := logger.DefaultManagerConfig()
	if c.Logger != nil {
		cfg = *c.Logger
		cfg.ApplyDefaults()
	}
	if cfg.AppName == "" {
		cfg.AppName = c.Name
	}
	return cfg
}

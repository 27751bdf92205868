package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ManagerConfig Logger 管理器配置
// 所有子系统 Logger 共享此基础配置，文件按子系统名分目录
type ManagerConfig struct {
	AppName  string `mapstructure:"app_name"` // 应用名（注入每条日志）
	Level    string `mapstructure:"level"`    // 日志级别：debug/info/warn/error
	Encoding string `mapstructure:"encoding"` // 编码：json/console

	EnableConsole bool   `mapstructure:"enable_console"` // 是否输出到控制台
	EnableFile    bool   `mapstructure:"enable_file"`    // 是否输出到文件
	BaseLogDir    string `mapstructure:"base_log_dir"`   // 日志根目录

	// 文件切割（lumberjack）
	MaxSize    int  `mapstructure:"max_size"`    // 单文件上限（MB）
	MaxBackups int  `mapstructure:"max_backups"` // 保留文件数
	MaxAge     int  `mapstructure:"max_age"`     // 保留天数
	Compress   bool `mapstructure:"compress"`    // 是否压缩旧文件

	EnableCaller bool `mapstructure:"enable_caller"` // 是否记录调用位置

	// TraceID 提取（优先 OpenTelemetry Span，其次自定义 context key）
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`
	TraceIDFieldName string `mapstructure:"trace_id_field_name"`
}

// DefaultManagerConfig 默认配置（控制台 json 输出，不写文件）
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Level:         "info",
		Encoding:      "json",
		EnableConsole: true,
		EnableFile:    false,
		BaseLogDir:    "logs",
		MaxSize:       100,
		MaxBackups:    10,
		MaxAge:        30,
		EnableCaller:  true,
		EnableTraceID: true,
	}
}

// ApplyDefaults 填充零值字段
func (c *ManagerConfig) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Encoding == "" {
		c.Encoding = "json"
	}
	if c.BaseLogDir == "" {
		c.BaseLogDir = "logs"
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 10
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 30
	}
}

// Validate 校验配置
func (c ManagerConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("非法日志级别: %s", c.Level)
	}
	switch c.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("非法日志编码: %s", c.Encoding)
	}
	return nil
}

// ParseLevel 解析日志级别字符串（未知级别回退 info）
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

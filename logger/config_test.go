package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// ===== 配置测试 =====

func TestDefaultManagerConfig(t *testing.T) {
	cfg := DefaultManagerConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Encoding)
	assert.True(t, cfg.EnableConsole)
	assert.False(t, cfg.EnableFile)
	assert.True(t, cfg.EnableTraceID)
	assert.NoError(t, cfg.Validate())
}

func TestManagerConfig_ApplyDefaults(t *testing.T) {
	cfg := ManagerConfig{}
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, "logs", cfg.BaseLogDir)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 10, cfg.MaxBackups)
	assert.Equal(t, 30, cfg.MaxAge)

	// 已设置的字段不被覆盖
	cfg2 := ManagerConfig{Level: "debug", MaxSize: 7}
	cfg2.ApplyDefaults()
	assert.Equal(t, "debug", cfg2.Level)
	assert.Equal(t, 7, cfg2.MaxSize)
}

func TestManagerConfig_Validate(t *testing.T) {
	assert.NoError(t, ManagerConfig{Level: "debug", Encoding: "console"}.Validate())
	assert.Error(t, ManagerConfig{Level: "verbose"}.Validate())
	assert.Error(t, ManagerConfig{Encoding: "xml"}.Validate())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))

	// 未知级别回退 info
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

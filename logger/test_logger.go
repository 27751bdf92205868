package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger 创建内存捕获的 CtxZapLogger（测试专用）
// 返回的 ObservedLogs 可用于断言日志内容
func NewObservedLogger() (*CtxZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultManagerConfig()
	return &CtxZapLogger{
		base:      zap.New(core),
		subsystem: "test",
		config:    &cfg,
	}, logs
}

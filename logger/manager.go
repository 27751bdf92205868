// Package logger 提供框架统一的日志能力
// 按子系统名称（luban/registry/service/extension...）管理 Logger 实例
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager Logger 管理器（管理多个子系统的 Logger 实例）
type Manager struct {
	baseConfig ManagerConfig
	loggers    map[string]*CtxZapLogger
	writers    map[string][]*lumberjack.Logger // 子系统 -> 文件写入器（用于关闭）
	mu         sync.RWMutex
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// NewManager 创建独立的 Manager 实例
// cfg 中的零值字段会自动填充为默认值
func NewManager(cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		baseConfig: cfg,
		loggers:    make(map[string]*CtxZapLogger),
		writers:    make(map[string][]*lumberjack.Logger),
	}
}

// InitManager 初始化全局 Logger 管理器（只生效一次）
func InitManager(cfg ManagerConfig) {
	managerOnce.Do(func() {
		globalManager = NewManager(cfg)
	})
}

// GetLogger 获取指定子系统的 CtxZapLogger（线程安全，按需创建）
// 返回的 Logger 已自动包含 subsystem 字段
func (m *Manager) GetLogger(name string) *CtxZapLogger {
	m.mu.RLock()
	if l, exists := m.loggers[name]; exists {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// 双重检查（避免并发创建）
	if l, exists := m.loggers[name]; exists {
		return l
	}

	zapLogger := m.createLogger(name)
	ctxLogger := &CtxZapLogger{
		// CallerSkip 跳过 CtxZapLogger 的包装层
		base:      zapLogger.With(zap.String("subsystem", name)).WithOptions(zap.AddCallerSkip(1)),
		subsystem: name,
		config:    &m.baseConfig,
	}
	m.loggers[name] = ctxLogger
	return ctxLogger
}

// createLogger 创建底层 zap.Logger
func (m *Manager) createLogger(name string) *zap.Logger {
	cfg := m.baseConfig
	encoder := createEncoder(cfg)
	level := ParseLevel(cfg.Level)

	var cores []zapcore.Core
	var writers []*lumberjack.Logger

	if cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	if cfg.EnableFile {
		// 普通日志和错误日志分文件，便于巡检
		infoWriter, infoLumber := createFileWriter(filepath.Join(cfg.BaseLogDir, name, name+".log"), cfg)
		writers = append(writers, infoLumber)
		cores = append(cores, zapcore.NewCore(encoder, infoWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= level && lvl < zapcore.ErrorLevel
			})))

		errWriter, errLumber := createFileWriter(filepath.Join(cfg.BaseLogDir, name, name+"-error.log"), cfg)
		writers = append(writers, errLumber)
		cores = append(cores, zapcore.NewCore(encoder, errWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= zapcore.ErrorLevel
			})))
	}

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}

	if len(writers) > 0 {
		m.writers[name] = writers
	}

	return zap.New(zapcore.NewTee(cores...), opts...)
}

// CloseAll 关闭所有 Logger（应用退出时调用）
// 刷新缓冲区并关闭文件句柄
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.loggers {
		_ = l.base.Sync()
	}
	for _, ws := range m.writers {
		for _, w := range ws {
			_ = w.Close()
		}
	}

	m.loggers = make(map[string]*CtxZapLogger)
	m.writers = make(map[string][]*lumberjack.Logger)
}

func createEncoder(cfg ManagerConfig) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Encoding == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// createFileWriter 创建文件写入器（lumberjack 切割）
func createFileWriter(filename string, cfg ManagerConfig) (zapcore.WriteSyncer, *lumberjack.Logger) {
	_ = os.MkdirAll(filepath.Dir(filename), 0755)

	lumberLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return zapcore.AddSync(lumberLogger), lumberLogger
}

// ============================================
// 包级别便捷函数（基于全局 Manager）
// ============================================

// GetLogger 获取指定子系统的 CtxZapLogger
// 全局 Manager 未初始化时使用默认配置
func GetLogger(name string) *CtxZapLogger {
	if globalManager == nil {
		InitManager(DefaultManagerConfig())
	}
	return globalManager.GetLogger(name)
}

// CloseAll 关闭全局 Manager 下的所有 Logger
func CloseAll() {
	if globalManager == nil {
		return
	}
	globalManager.CloseAll()
}

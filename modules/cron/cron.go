// Package cron 内置定时任务模块
// 基于 gocron 调度器，以 "cron" 服务对外提供任务注册能力
package cron

import (
	"fmt"
	"time"

	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/LUBANX/go-luban-framework/module"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

func init() {
	module.RegisterFactory(module.Factory{
		Name: "cron",
		New:  func() module.Module { return NewModule() },
	})
}

// Service 定时任务服务
// 模块初始化后发布为 "cron"，其他模块按名称获取并注册任务
type Service struct {
	scheduler gocron.Scheduler
	logger    *logger.CtxZapLogger
}

// Every 注册固定间隔任务
func (s *Service) Every(interval time.Duration, name string, task func()) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("注册定时任务 %s 失败: %w", name, err)
	}
	s.logger.Debug("定时任务已注册", zap.String("job", name), zap.Duration("interval", interval))
	return nil
}

// Cron 注册 crontab 表达式任务
func (s *Service) Cron(spec, name string, task func()) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(spec, false),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("注册定时任务 %s 失败: %w", name, err)
	}
	s.logger.Debug("定时任务已注册", zap.String("job", name), zap.String("spec", spec))
	return nil
}

// Scheduler 暴露底层调度器（高级用法）
func (s *Service) Scheduler() gocron.Scheduler {
	return s.scheduler
}

// Module 定时任务模块
type Module struct {
	svc             *Service
	shutdownTimeout time.Duration
	logger          *logger.CtxZapLogger
}

// NewModule 创建定时任务模块
func NewModule() *Module {
	return &Module{
		shutdownTimeout: 30 * time.Second,
		logger:          logger.GetLogger("cron"),
	}
}

func (m *Module) Name() string {
	return "cron"
}

func (m *Module) Version() string {
	return "1.0.0"
}

func (m *Module) Description() string {
	return "定时任务调度模块（gocron）"
}

func (m *Module) RequiredServices() []string {
	return nil
}

func (m *Module) ProvidedServiceNames() []string {
	return []string{module.ServiceCron}
}

// Configure 应用清单参数
// 支持 shutdown_timeout_seconds
func (m *Module) Configure(params map[string]any) error {
	if v, ok := params["shutdown_timeout_seconds"]; ok {
		seconds, ok := toInt(v)
		if !ok || seconds <= 0 {
			return fmt.Errorf("无效的 shutdown_timeout_seconds: %v", v)
		}
		m.shutdownTimeout = time.Duration(seconds) * time.Second
	}
	return nil
}

// Initialize 创建并启动调度器
func (m *Module) Initialize(sr module.ServiceLocator) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("创建调度器失败: %w", err)
	}

	m.svc = &Service{scheduler: scheduler, logger: m.logger}
	scheduler.Start()

	m.logger.Info("✅ 定时任务调度器已启动")
	return nil
}

// ProvidedServices 发布 cron 服务
func (m *Module) ProvidedServices() map[string]any {
	return map[string]any{module.ServiceCron: m.svc}
}

// Shutdown 停止调度器（等待运行中的任务结束）
func (m *Module) Shutdown() error {
	if m.svc == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- m.svc.scheduler.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("关停调度器失败: %w", err)
		}
		m.logger.Info("🛑 定时任务调度器已关停")
		return nil
	case <-time.After(m.shutdownTimeout):
		return fmt.Errorf("关停调度器超时（%s）", m.shutdownTimeout)
	}
}

// toInt 清单参数数字兼容转换（yaml/json 解析出的类型不定）
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

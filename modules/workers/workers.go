// Package workers 内置协程池模块
// 基于 ants 池，以 "workers" 服务对外提供受控的并发任务提交
package workers

import (
	"fmt"

	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/LUBANX/go-luban-framework/module"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const defaultPoolSize = 64

func init() {
	module.RegisterFactory(module.Factory{
		Name: "workers",
		New:  func() module.Module { return NewModule() },
	})
}

// Service 协程池服务
type Service struct {
	pool   *ants.Pool
	logger *logger.CtxZapLogger
}

// Submit 提交任务到池中执行
func (s *Service) Submit(task func()) error {
	if err := s.pool.Submit(task); err != nil {
		return fmt.Errorf("提交任务失败: %w", err)
	}
	return nil
}

// Running 当前运行中的任务数
func (s *Service) Running() int {
	return s.pool.Running()
}

// Cap 池容量
func (s *Service) Cap() int {
	return s.pool.Cap()
}

// Tune 动态调整池容量
func (s *Service) Tune(size int) {
	s.pool.Tune(size)
	s.logger.Debug("协程池容量已调整", zap.Int("size", size))
}

// Module 协程池模块
type Module struct {
	svc      *Service
	poolSize int
	logger   *logger.CtxZapLogger
}

// NewModule 创建协程池模块
func NewModule() *Module {
	return &Module{
		poolSize: defaultPoolSize,
		logger:   logger.GetLogger("workers"),
	}
}

func (m *Module) Name() string {
	return "workers"
}

func (m *Module) Version() string {
	return "1.0.0"
}

func (m *Module) Description() string {
	return "协程池模块（ants）"
}

func (m *Module) RequiredServices() []string {
	return nil
}

func (m *Module) ProvidedServiceNames() []string {
	return []string{module.ServiceWorkers}
}

// Configure 应用清单参数
// 支持 pool_size
func (m *Module) Configure(params map[string]any) error {
	if v, ok := params["pool_size"]; ok {
		size, ok := toInt(v)
		if !ok || size <= 0 {
			return fmt.Errorf("无效的 pool_size: %v", v)
		}
		m.poolSize = size
	}
	return nil
}

// Initialize 创建协程池
func (m *Module) Initialize(sr module.ServiceLocator) error {
	pool, err := ants.NewPool(m.poolSize)
	if err != nil {
		return fmt.Errorf("创建协程池失败: %w", err)
	}

	m.svc = &Service{pool: pool, logger: m.logger}
	m.logger.Info("✅ 协程池已创建", zap.Int("size", m.poolSize))
	return nil
}

// ProvidedServices 发布 workers 服务
func (m *Module) ProvidedServices() map[string]any {
	return map[string]any{module.ServiceWorkers: m.svc}
}

// Shutdown 释放协程池
func (m *Module) Shutdown() error {
	if m.svc == nil {
		return nil
	}
	m.svc.pool.Release()
	m.logger.Info("🛑 协程池已释放")
	return nil
}

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

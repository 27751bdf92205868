// Package extension 提供扩展点注册中心实现
// 扩展点是命名的挂钩位置，UI 组合层按名称定义并触发，
// 模块按已知名称向扩展点注册处理器
package extension

import (
	"context"
	"sort"
	"sync"

	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Registry 扩展点注册中心
type Registry struct {
	mu     sync.RWMutex
	points map[string]*Point
	pool   *ants.Pool // 异步扇出用协程池
	logger *logger.CtxZapLogger
}

// Option Registry 选项
type Option func(*Registry)

// WithPoolSize 设置异步扇出协程池大小（默认 100）
func WithPoolSize(size int) Option {
	return func(r *Registry) {
		if size > 0 {
			if pool, err := ants.NewPool(size); err == nil {
				r.pool.Release()
				r.pool = pool
			}
		}
	}
}

// NewRegistry 创建扩展点注册中心
func NewRegistry(opts ...Option) *Registry {
	pool, _ := ants.NewPool(100)
	r := &Registry{
		points: make(map[string]*Point),
		pool:   pool,
		logger: logger.GetLogger("extension"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreatePoint 获取扩展点（幂等，首次调用创建空扩展点）
func (r *Registry) GetOrCreatePoint(name string) *Point {
	r.mu.RLock()
	if p, ok := r.points[name]; ok {
		r.mu.RUnlock()
		return p
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.points[name]; ok {
		return p
	}

	p := newPoint(name, r.logger)
	r.points[name] = p
	r.logger.Info("创建扩展点", zap.String("point", name))
	return p
}

// Point 按名称获取已存在的扩展点
func (r *Registry) Point(name string) (*Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.points[name]
	return p, ok
}

// Has 检查扩展点是否存在
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.points[name]
	return ok
}

// PointNames 返回所有扩展点名称（排序后，便于诊断输出）
func (r *Registry) PointNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.points))
	for name := range r.points {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InvokeAsync 在协程池中异步扇出调用扩展点（结果丢弃，失败记日志）
// 适用于通知类扩展点（调用方不关心返回值）
func (r *Registry) InvokeAsync(ctx context.Context, name string, args ...any) {
	p := r.GetOrCreatePoint(name)

	err := r.pool.Submit(func() {
		_ = p.Invoke(ctx, args...)
	})
	if err != nil {
		r.logger.ErrorCtx(ctx, "提交异步扩展点调用失败",
			zap.String("point", name),
			zap.Error(err))
	}
}

// Close 关闭注册中心（释放协程池）
func (r *Registry) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Package service 提供服务注册中心实现
// 服务是按名称发布的单例对象，供模块间解耦使用：
// 消费方按名称查找协作者，而不是直接引用提供方
package service

import (
	"fmt"
	"sync"

	"github.com/LUBANX/go-luban-framework/logger"
	"go.uber.org/zap"
)

// entry 服务条目
type entry struct {
	name     string
	owner    string // 提供该服务的模块名（仅用于诊断）
	instance any
}

// NotifyFunc 服务注册通知回调
// 由宿主应用挂接（如转发到扩展点），在持锁之外调用
type NotifyFunc func(name, owner string)

// Registry 服务注册中心
//
// 启动阶段由模块注册中心单线程写入；启动完成后模块的后台任务
// （定时器、轮询器）可能并发调用 Get/Register，因此读写都加锁
type Registry struct {
	mu       sync.RWMutex
	services map[string]entry
	logger   *logger.CtxZapLogger
	onReg    NotifyFunc
}

// NewRegistry 创建服务注册中心
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]entry),
		logger:   logger.GetLogger("service"),
	}
}

// OnRegister 设置注册通知回调（先于模块初始化挂接）
func (r *Registry) OnRegister(fn NotifyFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReg = fn
}

// Register 注册服务
// 同名覆盖是显式策略：后写者胜出，必定输出一条诊断日志
func (r *Registry) Register(name string, svc any) {
	r.RegisterOwned(name, "", svc)
}

// RegisterOwned 注册服务并记录提供者模块名
func (r *Registry) RegisterOwned(name, owner string, svc any) {
	if name == "" {
		return
	}

	r.mu.Lock()
	old, replaced := r.services[name]
	r.services[name] = entry{name: name, owner: owner, instance: svc}
	notify := r.onReg
	r.mu.Unlock()

	if replaced {
		r.logger.Warn("⚠️ 服务被覆盖（后写者胜出）",
			zap.String("service", name),
			zap.String("old_owner", old.owner),
			zap.String("new_owner", owner))
	} else {
		r.logger.Info("注册服务",
			zap.String("service", name),
			zap.String("owner", owner))
	}

	if notify != nil {
		notify(name, owner)
	}
}

// Get 获取服务
// 缺失是正常的运行期状态（提供方可能初始化失败），调用方必须处理 ok == false
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	e, ok := r.services[name]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn("服务未注册", zap.String("service", name))
		return nil, false
	}
	return e.instance, true
}

// Has 检查服务是否已注册
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.services[name]
	return ok
}

// Owner 获取服务的提供者模块名
func (r *Registry) Owner(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.services[name]
	if !ok {
		return "", false
	}
	return e.owner, true
}

// All 获取所有服务（副本）
func (r *Registry) All() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]any, len(r.services))
	for name, e := range r.services {
		all[name] = e.instance
	}
	return all
}

// GetTyped 泛型函数获取服务并自动类型转换（包级别函数）
//
// 用法：
//
//	cron, ok := service.GetTyped[*cron.Service](reg, module.ServiceCron)
func GetTyped[T any](r *Registry, name string) (T, bool) {
	var zero T
	svc, ok := r.Get(name)
	if !ok {
		return zero, false
	}

	typed, ok := svc.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// MustGetTyped 泛型函数获取服务（不存在或类型不匹配则 panic）
// 仅适用于宿主应用对自身发布的核心服务的访问，模块内禁用
func MustGetTyped[T any](r *Registry, name string) T {
	typed, ok := GetTyped[T](r, name)
	if !ok {
		var zero T
		panic(fmt.Sprintf("服务 '%s' 不存在或类型不匹配，期望类型: %T", name, zero))
	}
	return typed
}

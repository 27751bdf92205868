// Package registry 提供模块注册中心实现
// 作为独立内核组件，不依赖任何业务模块
//
// 职责：
//   - 从配置的搜索位置发现模块清单并实例化模块
//   - 根据"所需服务 → 提供者模块"推导初始化顺序（环容忍拓扑排序）
//   - 驱动模块 Initialize/Shutdown，逐模块故障隔离
//   - 把模块提供的服务发布到服务注册中心
package registry

import (
	"os"
	"sort"
	"sync"

	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/LUBANX/go-luban-framework/module"
	"go.uber.org/zap"
)

// moduleEntry 模块注册条目
type moduleEntry struct {
	mod      module.Module
	state    module.State
	loadID   string // 加载标识（诊断用）
	manifest string // 清单路径（编程注册时为空）
}

// ModuleRegistry 模块注册中心
//
// 发现和初始化在进程启动期单线程执行；启动完成后注册中心本身
// 不再被并发修改，只读查询仍然加锁以保持安全
type ModuleRegistry struct {
	mu        sync.RWMutex
	modules   map[string]*moduleEntry
	locations []string
	order     []string // 最近一次解析出的初始化顺序
	logger    *logger.CtxZapLogger
}

// New 创建模块注册中心
func New() *ModuleRegistry {
	return &ModuleRegistry{
		modules: make(map[string]*moduleEntry),
		logger:  logger.GetLogger("registry"),
	}
}

// AddSearchLocation 注册模块搜索位置
// 不存在的目录或重复路径都是 no-op
func (r *ModuleRegistry) AddSearchLocation(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.locations {
		if existing == path {
			return
		}
	}
	r.locations = append(r.locations, path)
	r.logger.Debug("注册模块搜索位置", zap.String("path", path))
}

// SearchLocations 返回已注册的搜索位置（副本）
func (r *ModuleRegistry) SearchLocations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]string, len(r.locations))
	copy(locations, r.locations)
	return locations
}

// RegisterModule 编程注册模块（静态链接的内置模块走此入口）
// 同名覆盖是显式策略：后写者胜出，必定输出一条警告日志
func (r *ModuleRegistry) RegisterModule(mod module.Module) {
	if mod == nil || mod.Name() == "" {
		return
	}
	r.registerEntry(mod, "", "")
}

// registerEntry 注册模块条目（发现和编程注册共用）
func (r *ModuleRegistry) registerEntry(mod module.Module, loadID, manifest string) {
	name := mod.Name()

	r.mu.Lock()
	old, replaced := r.modules[name]
	r.modules[name] = &moduleEntry{
		mod:      mod,
		state:    module.StateRegistered,
		loadID:   loadID,
		manifest: manifest,
	}
	r.mu.Unlock()

	if replaced {
		r.logger.Warn("⚠️ 同名模块被覆盖（后写者胜出）",
			zap.String("module", name),
			zap.String("old_version", old.mod.Version()),
			zap.String("new_version", mod.Version()))
		return
	}

	r.logger.Info("注册模块",
		zap.String("module", name),
		zap.String("version", mod.Version()))
}

// GetModule 按名称获取模块
func (r *ModuleRegistry) GetModule(name string) (module.Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.modules[name]
	if !ok {
		return nil, false
	}
	return e.mod, true
}

// GetAllModules 获取所有已注册模块（副本）
func (r *ModuleRegistry) GetAllModules() map[string]module.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]module.Module, len(r.modules))
	for name, e := range r.modules {
		all[name] = e.mod
	}
	return all
}

// ModuleNames 返回所有模块名（排序后）
func (r *ModuleRegistry) ModuleNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModuleState 获取模块生命周期状态
func (r *ModuleRegistry) ModuleState(name string) (module.State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.modules[name]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// Count 已注册模块数量
func (r *ModuleRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// Implementing 泛型函数获取实现了指定能力接口的所有模块（包级别函数）
//
// 用法：
//
//	svcMods := registry.Implementing[module.ServiceModule](reg)
func Implementing[T any](r *ModuleRegistry) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// 按名称排序，保证结果确定
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []T
	for _, name := range names {
		if typed, ok := r.modules[name].mod.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

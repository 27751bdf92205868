package module

import (
	"sort"
	"sync"
)

// Factory 模块工厂（编译期注册）
//
// 动态加载源码在 Go 里不可行，取而代之的是显式注册：
// 每个模块包在 init() 中调用 RegisterFactory 自注册，
// 清单文件通过工厂名引用已链接进二进制的实现
type Factory struct {
	// Name 工厂名称，清单文件 module 字段引用此名称
	Name string

	// New 构造模块实例（不做任何初始化动作）
	New func() Module
}

var (
	factoryMu  sync.RWMutex
	factories  = make(map[string]Factory)
	collisions []string
)

// RegisterFactory 注册模块工厂
//
// 同名工厂后注册者覆盖先注册者（显式策略），
// 冲突会被记录，注册中心在发现阶段统一输出警告日志
func RegisterFactory(f Factory) {
	if f.Name == "" || f.New == nil {
		return
	}

	factoryMu.Lock()
	defer factoryMu.Unlock()

	if _, exists := factories[f.Name]; exists {
		collisions = append(collisions, f.Name)
	}
	factories[f.Name] = f
}

// LookupFactory 按名称查找工厂
func LookupFactory(name string) (Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factories[name]
	return f, ok
}

// FactoryNames 返回已注册的工厂名称（排序后，便于诊断输出）
func FactoryNames() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TakeFactoryCollisions 取出并清空工厂名冲突记录
// 由注册中心在发现阶段调用，用于输出覆盖警告
func TakeFactoryCollisions() []string {
	factoryMu.Lock()
	defer factoryMu.Unlock()

	taken := collisions
	collisions = nil
	return taken
}

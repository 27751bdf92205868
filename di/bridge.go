// Package di provides dependency injection utilities based on samber/do.
package di

import (
	"fmt"

	"github.com/LUBANX/go-luban-framework/service"
	"github.com/samber/do/v2"
)

// Bridge 桥接器，连接服务注册中心和 samber/do
//
// 设计目的：
//   - 让服务注册中心里按名称发布的服务可以按类型注入
//   - 宿主应用自己的构造函数走 do，模块产出的服务走注册中心，两边互通
type Bridge struct {
	services *service.Registry
	injector *do.RootScope
}

// NewBridge 创建桥接器
func NewBridge(services *service.Registry, injector *do.RootScope) *Bridge {
	return &Bridge{
		services: services,
		injector: injector,
	}
}

// Services 获取服务注册中心
func (b *Bridge) Services() *service.Registry {
	return b.services
}

// Injector 获取 samber/do 注入器
func (b *Bridge) Injector() *do.RootScope {
	return b.injector
}

// ProvideFromServices 将注册中心里的服务暴露给 samber/do
//
// 惰性解析：Provider 在首次 Invoke 时才查找服务，
// 因此可以在模块初始化之前挂接
//
// 示例：
//
//	di.ProvideFromServices[*config.Loader](bridge, module.ServiceConfig)
func ProvideFromServices[T any](b *Bridge, name string) {
	do.Provide(b.injector, func(i do.Injector) (T, error) {
		svc, ok := service.GetTyped[T](b.services, name)
		if !ok {
			var zero T
			return zero, fmt.Errorf("服务 '%s' 未注册或类型不匹配", name)
		}
		return svc, nil
	})
}

// ProvideNamedFromServices 按名称暴露注册中心里的服务
// 之后可用 do.InvokeNamed[T](injector, name) 解析
func ProvideNamedFromServices[T any](b *Bridge, name string) {
	do.ProvideNamed(b.injector, name, func(i do.Injector) (T, error) {
		svc, ok := service.GetTyped[T](b.services, name)
		if !ok {
			var zero T
			return zero, fmt.Errorf("服务 '%s' 未注册或类型不匹配", name)
		}
		return svc, nil
	})
}

// PublishToServices 将 samber/do 中的实例发布到注册中心
//
// 使用时机：宿主应用把自己构造的基础设施发布给模块使用
func PublishToServices[T any](b *Bridge, name string) error {
	instance, err := do.Invoke[T](b.injector)
	if err != nil {
		return fmt.Errorf("从注入器解析 '%s' 失败: %w", name, err)
	}
	b.services.Register(name, instance)
	return nil
}

// InvokeService 通过桥接器按类型获取服务（便捷方法）
func InvokeService[T any](b *Bridge) (T, error) {
	return do.Invoke[T](b.injector)
}

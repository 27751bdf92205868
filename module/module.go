// Package module 提供模块接口定义
// 这是最底层的包，不依赖任何业务包，避免循环依赖
package module

// Module 模块接口（统一生命周期管理）
//
// 所有可发现的功能单元都必须实现此接口
// 模块生命周期：Discovered → Registered → Active → ShutDown
type Module interface {
	// Name 模块名称（唯一标识）
	// 用于依赖解析和模块查找，同名模块后注册者覆盖先注册者（会记录警告日志）
	Name() string

	// Version 模块版本号（如 "1.2.0"）
	Version() string

	// Description 模块功能描述（用于诊断和模块清单展示）
	Description() string

	// RequiredServices 声明依赖的服务名称
	// 注册中心会根据"所需服务 → 提供者模块"的边做拓扑排序，确定初始化顺序
	//
	// 注意：
	//   - 声明的服务未必存在（提供者初始化失败时服务不会发布）
	//   - 模块在 Initialize 中必须把缺失服务当作正常情况处理
	RequiredServices() []string

	// ProvidedServiceNames 声明本模块将提供的服务名称
	//
	// 必须是纯声明：不依赖 Initialize 是否执行、不产生副作用
	// 依赖解析只读取声明，真正的服务实例在 Initialize 成功后才发布
	ProvidedServiceNames() []string

	// Initialize 初始化模块
	//
	// 职责：
	//   - 通过 sr 获取所需服务（缺失时自行降级，不要 panic）
	//   - 创建资源、准备对外提供的服务实例
	//
	// 返回 error 表示不可恢复的初始化失败，模块会被标记为 Failed，
	// 其声明的服务不会进入服务注册中心
	Initialize(sr ServiceLocator) error

	// Shutdown 停止模块（尽力而为，失败只记录日志）
	Shutdown() error
}

// ServiceModule 服务提供模块接口
// 提供服务的模块额外实现此接口
type ServiceModule interface {
	Module

	// ProvidedServices 返回服务名到服务实例的映射
	// 只有在 Initialize 成功之后才会被调用
	ProvidedServices() map[string]any
}

// Configurable 可配置模块接口（可选实现）
// 模块清单中的 params 表会在实例化后、初始化前注入
type Configurable interface {
	Configure(params map[string]any) error
}

// ServiceLocator 服务注册中心接口（模块侧视角）
//
// 职责：
//   - 按名称注册和查找单例服务
//   - 解耦服务的发现顺序和使用顺序
//
// 注意：Get 的缺失是正常的运行期状态，调用方必须处理 ok == false
type ServiceLocator interface {
	// Register 注册服务（同名覆盖，会记录诊断日志）
	Register(name string, svc any)

	// Get 获取服务
	Get(name string) (any, bool)

	// Has 检查服务是否已注册
	Has(name string) bool
}

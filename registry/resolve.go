package registry

import (
	"sort"

	"go.uber.org/zap"
)

// ResolveInitializationOrder 解析模块初始化顺序
//
// 依赖边由"消费者所需服务名 → 声明提供该服务的模块"推导，
// 只读取 ProvidedServiceNames() 纯声明，不触碰未初始化的实例数据。
//
// 深度优先拓扑排序，temporary/permanent 双标记集检测重访：
// 检测到环时记录警告、停止沿该边递归并回溯——不报错。
// 无论依赖是否被完整满足，每个模块在结果中恰好出现一次
// （覆盖优先于严格正确：宁可带环启动，不因环拒绝启动）
func (r *ModuleRegistry) ResolveInitializationOrder() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 服务名 -> 声明提供者（排序保证结果确定）
	providers := make(map[string][]string)
	for name, e := range r.modules {
		for _, svc := range e.mod.ProvidedServiceNames() {
			providers[svc] = append(providers[svc], name)
		}
	}
	for svc := range providers {
		sort.Strings(providers[svc])
	}

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)

	visited := make(map[string]bool, len(r.modules))
	temp := make(map[string]bool)
	order := make([]string, 0, len(r.modules))

	var visit func(name string)
	visit = func(name string) {
		if temp[name] {
			r.logger.Warn("⚠️ 检测到模块循环依赖（截断该边继续）", zap.String("module", name))
			return
		}
		if visited[name] {
			return
		}

		temp[name] = true
		for _, svc := range r.modules[name].mod.RequiredServices() {
			for _, provider := range providers[svc] {
				visit(provider)
			}
		}
		delete(temp, name)

		visited[name] = true
		order = append(order, name)
	}

	for _, name := range names {
		visit(name)
	}

	r.order = order
	r.logger.Info("模块初始化顺序解析完成", zap.Strings("order", order))
	return order
}

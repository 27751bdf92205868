package registry

import (
	"fmt"
	"sort"

	"github.com/LUBANX/go-luban-framework/module"
	"github.com/LUBANX/go-luban-framework/service"
	"go.uber.org/zap"
)

// InitializeModules 按解析顺序初始化所有模块
//
// 逐模块故障边界：Initialize 返回 error 或 panic 时，模块进入 Failed、
// 其服务被扣留，流程继续初始化下一个模块。消费方必须把缺失服务
// 当作普通的运行期缺席处理，而不是崩溃
func (r *ModuleRegistry) InitializeModules(sr *service.Registry) {
	order := r.ResolveInitializationOrder()
	r.logger.Info("🚀 开始初始化模块", zap.Int("total", len(order)))

	for _, name := range order {
		r.mu.RLock()
		e, ok := r.modules[name]
		r.mu.RUnlock()
		if !ok || e.state != module.StateRegistered {
			continue
		}

		r.logger.Info("初始化模块",
			zap.String("module", name),
			zap.Strings("requires", e.mod.RequiredServices()))

		if err := initializeOne(e.mod, sr); err != nil {
			r.setState(name, module.StateFailed)
			r.logger.Error("❌ 模块初始化失败（服务已扣留，继续后续模块）",
				zap.String("module", name),
				zap.Error(ErrInitialization.Wrap(err)))
			continue
		}

		r.setState(name, module.StateActive)

		// 服务提供模块：初始化成功后才发布服务，
		// 使其对顺序靠后的消费者可见
		if sm, ok := e.mod.(module.ServiceModule); ok {
			for svcName, svc := range sm.ProvidedServices() {
				sr.RegisterOwned(svcName, name, svc)
			}
		}

		r.logger.Info("✅ 模块初始化成功", zap.String("module", name))
	}
}

// initializeOne 单模块故障边界（panic 统一成 error）
func initializeOne(mod module.Module, sr *service.Registry) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("模块 '%s' 初始化 panic: %v", mod.Name(), rec)
		}
	}()
	return mod.Initialize(sr)
}

// ShutdownModules 停止所有模块
//
// 不管模块处于什么状态都尝试调用 Shutdown（已停止的除外），
// 按初始化顺序的逆序执行；单个模块的失败只记录日志，
// 不阻止其余模块停止
func (r *ModuleRegistry) ShutdownModules() {
	r.logger.Info("🛑 开始停止模块")

	for _, name := range r.shutdownOrder() {
		r.mu.RLock()
		e, ok := r.modules[name]
		r.mu.RUnlock()
		if !ok || e.state == module.StateShutDown {
			continue
		}

		r.logger.Info("停止模块", zap.String("module", name))
		if err := shutdownOne(e.mod); err != nil {
			r.logger.Error("模块停止失败（继续停止其余模块）",
				zap.String("module", name),
				zap.Error(err))
		}

		// Failed 是终态，保留以便诊断
		if e.state == module.StateActive {
			r.setState(name, module.StateShutDown)
		}
	}

	r.logger.Info("✅ 模块停止流程完成")
}

// shutdownOrder 停止顺序：最近一次解析顺序的逆序，
// 解析之后才注册的模块（未进入顺序）排在最后
func (r *ModuleRegistry) shutdownOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inOrder := make(map[string]bool, len(r.order))
	result := make([]string, 0, len(r.modules))

	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		if _, ok := r.modules[name]; ok {
			result = append(result, name)
			inOrder[name] = true
		}
	}

	var rest []string
	for name := range r.modules {
		if !inOrder[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(result, rest...)
}

// shutdownOne 单模块停止故障边界
func shutdownOne(mod module.Module) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("模块 '%s' 停止 panic: %v", mod.Name(), rec)
		}
	}()
	return mod.Shutdown()
}

// setState 更新模块状态
func (r *ModuleRegistry) setState(name string, state module.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.modules[name]; ok {
		r.logger.Debug("模块状态迁移",
			zap.String("module", name),
			zap.String("from", e.state.String()),
			zap.String("to", state.String()))
		e.state = state
	}
}

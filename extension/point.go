package extension

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/LUBANX/go-luban-framework/logger"
	"go.uber.org/zap"
)

// Handler 扩展点处理器
// args 是扩展点定义方约定的参数，返回值会被收集进 Invoke 的结果列表
type Handler func(ctx context.Context, args ...any) (any, error)

// Point 扩展点
//
// 多个模块可以向同一个命名扩展点贡献处理器（如"贡献菜单项"），
// 调用方以扇出方式触发所有处理器，单个处理器的失败不影响其他处理器
type Point struct {
	name     string
	mu       sync.RWMutex
	handlers []Handler
	logger   *logger.CtxZapLogger
}

func newPoint(name string, l *logger.CtxZapLogger) *Point {
	return &Point{
		name:   name,
		logger: l,
	}
}

// Name 扩展点名称
func (p *Point) Name() string {
	return p.name
}

// Register 注册处理器（追加到末尾，调用顺序 = 注册顺序）
// 重复注册同一处理器是 no-op（按函数指针判等）
//
// 注意：同一函数字面量生成的多个闭包共享代码指针，即使捕获的变量不同
// 也会被视为同一处理器。需要按实例注册多份时，请使用不同的具名函数或
// 方法值，而不是在循环里复用同一个字面量
func (p *Point) Register(h Handler) {
	if h == nil {
		return
	}

	ptr := reflect.ValueOf(h).Pointer()

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.handlers {
		if reflect.ValueOf(existing).Pointer() == ptr {
			return
		}
	}
	p.handlers = append(p.handlers, h)
	p.logger.Debug("注册扩展点处理器", zap.String("point", p.name))
}

// Unregister 注销处理器（按函数指针判等）
func (p *Point) Unregister(h Handler) {
	if h == nil {
		return
	}

	ptr := reflect.ValueOf(h).Pointer()

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, existing := range p.handlers {
		if reflect.ValueOf(existing).Pointer() == ptr {
			p.handlers = append(p.handlers[:i], p.handlers[i+1:]...)
			p.logger.Debug("注销扩展点处理器", zap.String("point", p.name))
			return
		}
	}
}

// HandlerCount 当前处理器数量
func (p *Point) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.handlers)
}

// Invoke 调用所有处理器，返回成功处理器的结果列表
//
// 隔离契约：处理器返回 error 或 panic 都只记录日志并跳过其结果，
// 其余处理器照常执行——一个行为不端的扩展不能阻止其他扩展贡献结果
//
// 并发语义：调用时对处理器列表做快照；Invoke 执行期间并发注册的
// 处理器可能被包含也可能不被包含，这是明确允许的非确定性
func (p *Point) Invoke(ctx context.Context, args ...any) []any {
	p.mu.RLock()
	snapshot := make([]Handler, len(p.handlers))
	copy(snapshot, p.handlers)
	p.mu.RUnlock()

	results := make([]any, 0, len(snapshot))
	for _, h := range snapshot {
		result, err := p.safeCall(ctx, h, args)
		if err != nil {
			p.logger.ErrorCtx(ctx, "扩展点处理器执行失败",
				zap.String("point", p.name),
				zap.Error(err))
			continue
		}
		results = append(results, result)
	}
	return results
}

// safeCall 单处理器故障边界（error 和 panic 统一成 error）
func (p *Point) safeCall(ctx context.Context, h Handler, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("处理器 panic: %v", r)
		}
	}()
	return h(ctx, args...)
}

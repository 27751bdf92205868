// Package application 提供通用的应用启动框架
// BaseApplication 承载模块发现、初始化与关停的完整生命周期
package application

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/LUBANX/go-luban-framework/config"
	"github.com/LUBANX/go-luban-framework/extension"
	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/LUBANX/go-luban-framework/module"
	"github.com/LUBANX/go-luban-framework/registry"
	"github.com/LUBANX/go-luban-framework/service"
	"go.uber.org/zap"
)

// ExtensionServiceRegistered 服务注册通知扩展点
// 每次服务发布后异步触发，args = (服务名, 提供者模块名)
const ExtensionServiceRegistered = "framework.service.registered"

// BaseApplication 应用核心框架
// 持有三个注册中心（服务/扩展点/模块）并驱动模块生命周期
type BaseApplication struct {
	// 配置
	configPath string
	envPrefix  string
	appConfig  *AppConfig
	loader     *config.Loader

	// 核心组件
	logger     *logger.CtxZapLogger
	services   *service.Registry
	extensions *extension.Registry
	modules    *registry.ModuleRegistry

	// 生命周期
	ctx    context.Context
	cancel context.CancelFunc
	state  AppState
	mu     sync.RWMutex

	version string

	// 回调函数
	onSetup    func(*BaseApplication) error
	onReady    func(*BaseApplication) error
	onShutdown func(context.Context) error
}

// AppState 应用状态
type AppState int

const (
	StateInit AppState = iota
	StateSetup
	StateRunning
	StateStopping
	StateStopped
)

// String 状态字符串表示
func (s AppState) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateSetup:
		return "Setup"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// NewBase 创建基础应用实例
// configPath: 主配置文件路径（如 ../configs/app.yaml，可为空）
// envPrefix: 环境变量前缀（如 "LUBAN"）
func NewBase(configPath, envPrefix string) *BaseApplication {
	ctx, cancel := context.WithCancel(context.Background())

	loader := config.NewLoader()
	loader.AddSource(config.NewDefaultsSource(map[string]any{
		"name": "luban-app",
		"env":  "dev",
	}))
	if configPath != "" {
		loader.AddSource(config.NewOptionalFileSource(configPath, config.PriorityFile))
	}
	if envPrefix != "" {
		loader.AddSource(config.NewEnvSource(envPrefix, config.PriorityEnv))
	}
	if err := loader.Load(); err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	var appCfg AppConfig
	if err := loader.Unmarshal(&appCfg); err != nil {
		panic(fmt.Sprintf("解析 AppConfig 失败: %v", err))
	}

	// Logger 必须先于任何注册中心初始化
	logger.InitManager(appCfg.loggerConfig())
	coreLogger := logger.GetLogger("app")

	extOpts := []extension.Option{}
	if appCfg.ExtensionPoolSize > 0 {
		extOpts = append(extOpts, extension.WithPoolSize(appCfg.ExtensionPoolSize))
	}

	app := &BaseApplication{
		configPath: configPath,
		envPrefix:  envPrefix,
		appConfig:  &appCfg,
		loader:     loader,
		logger:     coreLogger,
		services:   service.NewRegistry(),
		extensions: extension.NewRegistry(extOpts...),
		modules:    registry.New(),
		ctx:        ctx,
		cancel:     cancel,
		state:      StateInit,
	}

	// 服务注册事件转发到扩展点（异步，不阻塞注册方）
	app.services.OnRegister(func(name, owner string) {
		app.extensions.InvokeAsync(app.ctx, ExtensionServiceRegistered, name, owner)
	})

	coreLogger.DebugCtx(ctx, "✅ 基础应用初始化完成",
		zap.String("configPath", configPath),
		zap.String("sources", loader.Describe()))

	return app
}

// WithVersion 设置应用版本号（链式调用）
func (b *BaseApplication) WithVersion(version string) *BaseApplication {
	b.version = version
	return b
}

// GetVersion 获取应用版本号
func (b *BaseApplication) GetVersion() string {
	return b.version
}

// Bootstrap 启动流程（核心逻辑）
// 发布内置服务 → 发现模块 → 解析顺序 → 初始化模块
// 单个模块失败不会中断启动，失败模块进入 Failed 状态
func (b *BaseApplication) Bootstrap() error {
	b.setState(StateSetup)

	// 1. 发布内置服务（先于模块初始化，保证所有模块可见）
	b.services.Register(module.ServiceConfig, b.loader)
	b.services.Register(module.ServiceExtensionRegistry, b.extensions)

	// 2. 注册搜索目录并发现模块
	for _, loc := range b.appConfig.Modules.Locations {
		b.modules.AddSearchLocation(loc)
	}
	b.modules.Discover()

	// 3. 触发 OnSetup 回调（宿主可在此手工注册模块）
	if b.onSetup != nil {
		if err := b.onSetup(b); err != nil {
			return fmt.Errorf("onSetup failed: %w", err)
		}
	}

	// 4. 按依赖顺序初始化全部模块
	b.modules.InitializeModules(b.services)

	b.setState(StateRunning)
	b.logger.InfoCtx(b.ctx, "🚀 应用启动完成",
		zap.String("name", b.appConfig.Name),
		zap.String("version", b.version),
		zap.Int("modules", b.modules.Count()))

	// 5. 触发 OnReady 回调
	if b.onReady != nil {
		if err := b.onReady(b); err != nil {
			return fmt.Errorf("onReady failed: %w", err)
		}
	}

	return nil
}

// Run 启动并阻塞直到收到关闭信号
func (b *BaseApplication) Run() error {
	if err := b.Bootstrap(); err != nil {
		return err
	}
	b.WaitShutdown()
	return b.Shutdown(30 * time.Second)
}

// Shutdown 优雅关闭（核心逻辑）
// 按初始化顺序的逆序关停模块，然后释放扩展点池与日志
func (b *BaseApplication) Shutdown(timeout time.Duration) error {
	b.setState(StateStopping)
	b.logger.DebugCtx(b.ctx, "🛑 开始优雅关停...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// 1. 触发 OnShutdown 回调（业务层清理）
	if b.onShutdown != nil {
		if err := b.onShutdown(ctx); err != nil {
			b.logger.ErrorCtx(ctx, "OnShutdown callback failed", zap.Error(err))
		}
	}

	// 2. 逆序关停模块（单个失败不中断）
	b.modules.ShutdownModules()

	// 3. 释放扩展点异步池
	b.extensions.Close()

	b.logger.DebugCtx(ctx, "✅ 所有模块已关停")
	b.setState(StateStopped)

	// 4. 最后关闭日志（刷盘）
	logger.CloseAll()
	return nil
}

// WaitShutdown 等待关闭信号
// 支持 SIGINT (Ctrl+C) 和 SIGTERM (kill)
// 🎯 双信号机制：第一次信号触发优雅关停，第二次信号立即强制退出
func (b *BaseApplication) WaitShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		b.logger.DebugCtx(b.ctx, "Shutdown signal received (graceful shutdown)", zap.String("signal", sig.String()))
		b.logger.DebugCtx(b.ctx, "💡 Tip: Press Ctrl+C again to force exit immediately")

		b.cancel()

		go func() {
			sig := <-quit
			b.logger.WarnCtx(context.Background(), "⚠️  Second signal received, forcing exit!", zap.String("signal", sig.String()))
			os.Exit(1)
		}()

	case <-b.ctx.Done():
		b.logger.DebugCtx(context.Background(), "Context cancelled, starting graceful shutdown")
	}
}

// Cancel 手动触发关闭（用于测试或程序控制）
func (b *BaseApplication) Cancel() {
	b.cancel()
}

// OnSetup 注册 Setup 阶段回调（发现之后、初始化之前）
func (b *BaseApplication) OnSetup(fn func(*BaseApplication) error) *BaseApplication {
	b.onSetup = fn
	return b
}

// OnReady 注册启动完成回调
func (b *BaseApplication) OnReady(fn func(*BaseApplication) error) *BaseApplication {
	b.onReady = fn
	return b
}

// OnShutdown 注册关闭前回调（清理资源）
func (b *BaseApplication) OnShutdown(fn func(context.Context) error) *BaseApplication {
	b.onShutdown = fn
	return b
}

// Services 服务注册中心
func (b *BaseApplication) Services() *service.Registry {
	return b.services
}

// Extensions 扩展点注册中心
func (b *BaseApplication) Extensions() *extension.Registry {
	return b.extensions
}

// Modules 模块注册中心
func (b *BaseApplication) Modules() *registry.ModuleRegistry {
	return b.modules
}

// GetConfigLoader 获取配置加载器
func (b *BaseApplication) GetConfigLoader() *config.Loader {
	return b.loader
}

// MustGetLogger 获取日志实例
func (b *BaseApplication) MustGetLogger() *logger.CtxZapLogger {
	if b.logger == nil {
		panic("logger not initialized")
	}
	return b.logger
}

// LoadAppConfig 获取框架配置（NewBase 中已加载并缓存）
func (b *BaseApplication) LoadAppConfig() (*AppConfig, error) {
	if b.appConfig == nil {
		return nil, fmt.Errorf("AppConfig 未初始化")
	}
	return b.appConfig, nil
}

// GetState 获取当前状态（线程安全）
func (b *BaseApplication) GetState() AppState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Context 获取应用上下文
func (b *BaseApplication) Context() context.Context {
	return b.ctx
}

// setState 设置状态（线程安全）
func (b *BaseApplication) setState(state AppState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldState := b.state
	b.state = state

	if b.logger != nil {
		b.logger.DebugCtx(b.ctx, "State changed",
			zap.String("from", oldState.String()),
			zap.String("to", state.String()))
	}
}

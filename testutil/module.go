// Package testutil 提供模块框架的测试辅助工具
package testutil

import (
	"errors"

	"github.com/LUBANX/go-luban-framework/module"
)

// StubModule 可编排的测试模块
// 通过字段控制各生命周期阶段的行为（返回错误、panic、记录调用顺序）
type StubModule struct {
	ModName        string
	ModVersion     string
	ModDescription string

	Requires []string
	Provides map[string]any

	ConfigureErr  error
	InitErr       error
	InitPanic     string
	ShutdownErr   error
	ShutdownPanic string

	// 共享记录器（多个模块指向同一个切片可断言顺序）
	InitLog     *[]string
	ShutdownLog *[]string

	// 调用痕迹
	Params      map[string]any
	Initialized bool
	ShutDown    bool
	Locator     module.ServiceLocator
}

// NewStubModule 创建测试模块
func NewStubModule(name string) *StubModule {
	return &StubModule{
		ModName:    name,
		ModVersion: "0.0.1",
	}
}

// WithRequires 设置依赖服务（链式调用）
func (s *StubModule) WithRequires(services ...string) *StubModule {
	s.Requires = services
	return s
}

// WithProvides 设置提供的服务（链式调用）
func (s *StubModule) WithProvides(name string, svc any) *StubModule {
	if s.Provides == nil {
		s.Provides = make(map[string]any)
	}
	s.Provides[name] = svc
	return s
}

// WithInitErr 让 Initialize 返回错误（链式调用）
func (s *StubModule) WithInitErr(msg string) *StubModule {
	s.InitErr = errors.New(msg)
	return s
}

// WithInitPanic 让 Initialize panic（链式调用）
func (s *StubModule) WithInitPanic(msg string) *StubModule {
	s.InitPanic = msg
	return s
}

// WithOrderLog 挂接初始化/关停顺序记录器（链式调用）
func (s *StubModule) WithOrderLog(initLog, shutdownLog *[]string) *StubModule {
	s.InitLog = initLog
	s.ShutdownLog = shutdownLog
	return s
}

func (s *StubModule) Name() string {
	return s.ModName
}

func (s *StubModule) Version() string {
	return s.ModVersion
}

func (s *StubModule) Description() string {
	return s.ModDescription
}

func (s *StubModule) RequiredServices() []string {
	return s.Requires
}

func (s *StubModule) ProvidedServiceNames() []string {
	names := make([]string, 0, len(s.Provides))
	for name := range s.Provides {
		names = append(names, name)
	}
	return names
}

func (s *StubModule) Configure(params map[string]any) error {
	s.Params = params
	return s.ConfigureErr
}

func (s *StubModule) Initialize(sr module.ServiceLocator) error {
	s.Locator = sr
	if s.InitLog != nil {
		*s.InitLog = append(*s.InitLog, s.ModName)
	}
	if s.InitPanic != "" {
		panic(s.InitPanic)
	}
	if s.InitErr != nil {
		return s.InitErr
	}
	s.Initialized = true
	return nil
}

func (s *StubModule) ProvidedServices() map[string]any {
	return s.Provides
}

func (s *StubModule) Shutdown() error {
	if s.ShutdownLog != nil {
		*s.ShutdownLog = append(*s.ShutdownLog, s.ModName)
	}
	if s.ShutdownPanic != "" {
		panic(s.ShutdownPanic)
	}
	if s.ShutdownErr != nil {
		return s.ShutdownErr
	}
	s.ShutDown = true
	return nil
}

package registry

import (
	"testing"

	"github.com/LUBANX/go-luban-framework/module"
	"github.com/LUBANX/go-luban-framework/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== 搜索位置测试 =====

func TestAddSearchLocation(t *testing.T) {
	r := New()
	dir := t.TempDir()

	r.AddSearchLocation(dir)
	r.AddSearchLocation(dir) // 重复 no-op
	r.AddSearchLocation("/no/such/directory")

	assert.Equal(t, []string{dir}, r.SearchLocations())
}

// ===== 模块注册测试 =====

func TestRegisterModule(t *testing.T) {
	r := New()
	mod := testutil.NewStubModule("billing")

	r.RegisterModule(mod)

	got, ok := r.GetModule("billing")
	require.True(t, ok)
	assert.Same(t, mod, got)

	state, ok := r.ModuleState("billing")
	require.True(t, ok)
	assert.Equal(t, module.StateRegistered, state)
	assert.Equal(t, 1, r.Count())
}

func TestRegisterModule_NilIgnored(t *testing.T) {
	r := New()
	r.RegisterModule(nil)
	r.RegisterModule(testutil.NewStubModule(""))
	assert.Equal(t, 0, r.Count())
}

func TestRegisterModule_LastWriterWins(t *testing.T) {
	r := New()

	first := testutil.NewStubModule("billing")
	first.ModVersion = "1.0.0"
	second := testutil.NewStubModule("billing")
	second.ModVersion = "2.0.0"

	r.RegisterModule(first)
	r.RegisterModule(second)

	got, ok := r.GetModule("billing")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Count())
}

func TestGetModule_Missing(t *testing.T) {
	r := New()

	_, ok := r.GetModule("ghost")
	assert.False(t, ok)

	_, ok = r.ModuleState("ghost")
	assert.False(t, ok)
}

func TestModuleNames_Sorted(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("zeta"))
	r.RegisterModule(testutil.NewStubModule("alpha"))

	assert.Equal(t, []string{"alpha", "zeta"}, r.ModuleNames())
}

func TestGetAllModules_IsCopy(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("billing"))

	all := r.GetAllModules()
	delete(all, "billing")

	assert.Equal(t, 1, r.Count())
}

// ===== 能力接口查询测试 =====

// bareModule 只实现基础接口（不带 ServiceModule 能力）
type bareModule struct {
	name string
}

func (b *bareModule) Name() string                       { return b.name }
func (b *bareModule) Version() string                    { return "0.0.1" }
func (b *bareModule) Description() string                { return "" }
func (b *bareModule) RequiredServices() []string         { return nil }
func (b *bareModule) ProvidedServiceNames() []string     { return nil }
func (b *bareModule) Initialize(module.ServiceLocator) error { return nil }
func (b *bareModule) Shutdown() error                    { return nil }

func TestImplementing(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("stub_b").WithProvides("svc", struct{}{}))
	r.RegisterModule(testutil.NewStubModule("stub_a"))
	r.RegisterModule(&bareModule{name: "bare"})

	// StubModule 实现 ServiceModule，bareModule 不实现
	svcMods := Implementing[module.ServiceModule](r)
	require.Len(t, svcMods, 2)

	// 按模块名排序
	assert.Equal(t, "stub_a", svcMods[0].(module.Module).Name())
	assert.Equal(t, "stub_b", svcMods[1].(module.Module).Name())

	all := Implementing[module.Module](r)
	assert.Len(t, all, 3)
}

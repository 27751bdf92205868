package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule 最小模块实现（仅用于工厂表测试）
type fakeModule struct {
	name string
}

func (f *fakeModule) Name() string                          { return f.name }
func (f *fakeModule) Version() string                       { return "0.0.1" }
func (f *fakeModule) Description() string                   { return "" }
func (f *fakeModule) RequiredServices() []string            { return nil }
func (f *fakeModule) ProvidedServiceNames() []string        { return nil }
func (f *fakeModule) Initialize(sr ServiceLocator) error    { return nil }
func (f *fakeModule) Shutdown() error                       { return nil }

// ===== 工厂表测试 =====

func TestRegisterFactory_Lookup(t *testing.T) {
	RegisterFactory(Factory{
		Name: "factory_test_basic",
		New:  func() Module { return &fakeModule{name: "factory_test_basic"} },
	})

	f, ok := LookupFactory("factory_test_basic")
	require.True(t, ok)
	assert.Equal(t, "factory_test_basic", f.Name)

	mod := f.New()
	assert.Equal(t, "factory_test_basic", mod.Name())
}

func TestLookupFactory_NotFound(t *testing.T) {
	_, ok := LookupFactory("factory_test_no_such")
	assert.False(t, ok)
}

func TestRegisterFactory_Collision(t *testing.T) {
	first := &fakeModule{name: "first"}
	second := &fakeModule{name: "second"}

	RegisterFactory(Factory{Name: "factory_test_collision", New: func() Module { return first }})
	TakeFactoryCollisions() // 清空历史记录

	RegisterFactory(Factory{Name: "factory_test_collision", New: func() Module { return second }})

	// 后写者胜出
	f, ok := LookupFactory("factory_test_collision")
	require.True(t, ok)
	assert.Same(t, second, f.New())

	// 冲突被记录，且只能取走一次
	collisions := TakeFactoryCollisions()
	assert.Contains(t, collisions, "factory_test_collision")
	assert.Empty(t, TakeFactoryCollisions())
}

func TestFactoryNames_Sorted(t *testing.T) {
	RegisterFactory(Factory{Name: "factory_test_zz", New: func() Module { return &fakeModule{} }})
	RegisterFactory(Factory{Name: "factory_test_aa", New: func() Module { return &fakeModule{} }})

	names := FactoryNames()
	assert.True(t, sortedStrings(names))
	assert.Contains(t, names, "factory_test_aa")
	assert.Contains(t, names, "factory_test_zz")
}

func sortedStrings(names []string) bool {
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			return false
		}
	}
	return true
}

// ===== 状态机测试 =====

func TestState_String(t *testing.T) {
	assert.Equal(t, "Discovered", StateDiscovered.String())
	assert.Equal(t, "Registered", StateRegistered.String())
	assert.Equal(t, "Active", StateActive.String())
	assert.Equal(t, "Failed", StateFailed.String())
	assert.Equal(t, "ShutDown", StateShutDown.String())
}

func TestState_Terminal(t *testing.T) {
	assert.False(t, StateDiscovered.Terminal())
	assert.False(t, StateRegistered.Terminal())
	assert.False(t, StateActive.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateShutDown.Terminal())
}

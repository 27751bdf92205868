package registry

import (
	"testing"

	"github.com/LUBANX/go-luban-framework/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(names []string, target string) int {
	for i, n := range names {
		if n == target {
			return i
		}
	}
	return -1
}

// ===== 初始化顺序解析测试 =====

func TestResolveInitializationOrder_Chain(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("auth").WithProvides("auth", struct{}{}))
	r.RegisterModule(testutil.NewStubModule("session").
		WithRequires("auth").
		WithProvides("session", struct{}{}))
	r.RegisterModule(testutil.NewStubModule("activity").WithRequires("session"))

	order := r.ResolveInitializationOrder()

	require.Len(t, order, 3)
	assert.Less(t, indexOf(order, "auth"), indexOf(order, "session"))
	assert.Less(t, indexOf(order, "session"), indexOf(order, "activity"))
}

func TestResolveInitializationOrder_Deterministic(t *testing.T) {
	build := func() *ModuleRegistry {
		r := New()
		r.RegisterModule(testutil.NewStubModule("charlie").WithProvides("c", struct{}{}))
		r.RegisterModule(testutil.NewStubModule("alpha").WithRequires("c"))
		r.RegisterModule(testutil.NewStubModule("bravo").WithRequires("c"))
		return r
	}

	first := build().ResolveInitializationOrder()
	second := build().ResolveInitializationOrder()

	// 同一依赖图多次解析结果一致（独立模块按名称排序）
	assert.Equal(t, first, second)
}

func TestResolveInitializationOrder_Cycle(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("a").
		WithRequires("b_svc").
		WithProvides("a_svc", struct{}{}))
	r.RegisterModule(testutil.NewStubModule("b").
		WithRequires("a_svc").
		WithProvides("b_svc", struct{}{}))

	order := r.ResolveInitializationOrder()

	// 环不报错：每个模块恰好出现一次
	require.Len(t, order, 2)
	assert.Contains(t, order, "a")
	assert.Contains(t, order, "b")
}

func TestResolveInitializationOrder_SelfCycle(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("narcissus").
		WithRequires("mirror").
		WithProvides("mirror", struct{}{}))

	order := r.ResolveInitializationOrder()
	assert.Equal(t, []string{"narcissus"}, order)
}

func TestResolveInitializationOrder_MissingProvider(t *testing.T) {
	r := New()
	r.RegisterModule(testutil.NewStubModule("orphan").WithRequires("no_such_service"))

	// 无提供者的依赖不阻碍排序
	order := r.ResolveInitializationOrder()
	assert.Equal(t, []string{"orphan"}, order)
}

func TestResolveInitializationOrder_Empty(t *testing.T) {
	r := New()
	assert.Empty(t, r.ResolveInitializationOrder())
}

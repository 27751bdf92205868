package extension

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== 扩展点注册中心测试 =====

func TestRegistry_GetOrCreatePoint_Idempotent(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	p1 := r.GetOrCreatePoint("menu.items")
	p2 := r.GetOrCreatePoint("menu.items")

	// 同名扩展点返回同一实例，已注册的处理器不丢失
	assert.Same(t, p1, p2)

	p1.Register(func(ctx context.Context, args ...any) (any, error) { return 1, nil })
	assert.Equal(t, 1, p2.HandlerCount())
}

func TestRegistry_Point_Lookup(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	_, ok := r.Point("missing")
	assert.False(t, ok)
	assert.False(t, r.Has("missing"))

	r.GetOrCreatePoint("menu.items")
	p, ok := r.Point("menu.items")
	require.True(t, ok)
	assert.Equal(t, "menu.items", p.Name())
	assert.True(t, r.Has("menu.items"))
}

func TestRegistry_PointNames_Sorted(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	// 乱序创建，结果必须与创建顺序和 map 迭代顺序无关
	for _, name := range []string{"zeta", "alpha", "mike", "bravo", "yankee"} {
		r.GetOrCreatePoint(name)
	}

	assert.Equal(t, []string{"alpha", "bravo", "mike", "yankee", "zeta"}, r.PointNames())
}

func TestRegistry_InvokeAsync(t *testing.T) {
	r := NewRegistry(WithPoolSize(4))
	defer r.Close()

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var got []any

	p := r.GetOrCreatePoint("notify")
	p.Register(func(ctx context.Context, args ...any) (any, error) {
		mu.Lock()
		got = append(got, args...)
		mu.Unlock()
		wg.Done()
		return nil, nil
	})

	r.InvokeAsync(context.Background(), "notify", "payload")

	waitDone(t, &wg, time.Second)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []any{"payload"}, got)
}

func TestRegistry_InvokeAsync_UnknownPoint(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	// 未注册处理器的扩展点：按需创建、空扇出、不 panic
	assert.NotPanics(t, func() {
		r.InvokeAsync(context.Background(), "ghost", 1, 2, 3)
	})
	assert.True(t, r.Has("ghost"))
}

func waitDone(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("异步处理器未在超时内执行")
	}
}

package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	users map[string]string
}

// ===== 注册与查找测试 =====

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	auth := &fakeAuth{users: map[string]string{}}

	r.Register("auth", auth)

	svc, ok := r.Get("auth")
	require.True(t, ok)
	assert.Same(t, auth, svc)
	assert.True(t, r.Has("auth"))
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()

	svc, ok := r.Get("session")
	assert.False(t, ok)
	assert.Nil(t, svc)
	assert.False(t, r.Has("session"))
}

func TestRegistry_EmptyNameIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register("", "ignored")
	assert.Equal(t, 0, len(r.All()))
}

// ===== 覆盖策略测试 =====

func TestRegistry_LastWriterWins(t *testing.T) {
	r := NewRegistry()

	first := &fakeAuth{}
	second := &fakeAuth{}

	r.RegisterOwned("auth", "auth_v1", first)
	r.RegisterOwned("auth", "auth_v2", second)

	svc, ok := r.Get("auth")
	require.True(t, ok)
	assert.Same(t, second, svc)

	owner, ok := r.Owner("auth")
	require.True(t, ok)
	assert.Equal(t, "auth_v2", owner)
}

func TestRegistry_Owner_Missing(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Owner("nope")
	assert.False(t, ok)
}

// ===== 类型化获取测试 =====

func TestGetTyped(t *testing.T) {
	r := NewRegistry()
	auth := &fakeAuth{}
	r.Register("auth", auth)

	got, ok := GetTyped[*fakeAuth](r, "auth")
	require.True(t, ok)
	assert.Same(t, auth, got)

	// 类型不匹配
	_, ok = GetTyped[string](r, "auth")
	assert.False(t, ok)

	// 服务缺失
	_, ok = GetTyped[*fakeAuth](r, "missing")
	assert.False(t, ok)
}

func TestMustGetTyped_PanicsOnMissing(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		MustGetTyped[*fakeAuth](r, "missing")
	})
}

// ===== 注册通知测试 =====

func TestRegistry_OnRegister(t *testing.T) {
	r := NewRegistry()

	var mu sync.Mutex
	var events [][2]string
	r.OnRegister(func(name, owner string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, [2]string{name, owner})
	})

	r.RegisterOwned("auth", "auth_module", &fakeAuth{})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "auth", events[0][0])
	assert.Equal(t, "auth_module", events[0][1])
}

func TestRegistry_All_IsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register("auth", &fakeAuth{})

	all := r.All()
	delete(all, "auth")

	// 删除副本不影响注册中心
	assert.True(t, r.Has("auth"))
}

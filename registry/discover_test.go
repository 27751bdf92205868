package registry

import (
	"testing"

	"github.com/LUBANX/go-luban-framework/logger"
	"github.com/LUBANX/go-luban-framework/module"
	"github.com/LUBANX/go-luban-framework/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// registerStubFactory 注册生产 StubModule 的工厂（全局表，名称必须唯一）
func registerStubFactory(name string) {
	module.RegisterFactory(module.Factory{
		Name: name,
		New:  func() module.Module { return testutil.NewStubModule(name) },
	})
}

// ===== 清单文件识别测试 =====

func TestIsManifestFile(t *testing.T) {
	assert.True(t, isManifestFile("cron.module.yaml"))
	assert.True(t, isManifestFile("cron.module.yml"))
	assert.True(t, isManifestFile("cron.module.json"))
	assert.True(t, isManifestFile("cron.module.toml"))

	assert.False(t, isManifestFile("cron.yaml"))
	assert.False(t, isManifestFile("cron.module"))
	assert.False(t, isManifestFile("cron.module.txt"))
	assert.False(t, isManifestFile("module.yaml"))
}

func TestIsPrivateName(t *testing.T) {
	assert.True(t, isPrivateName("_drafts"))
	assert.True(t, isPrivateName(".git"))
	assert.False(t, isPrivateName("modules"))
}

func TestManifest_Validate(t *testing.T) {
	assert.Error(t, Manifest{}.Validate())
	assert.NoError(t, Manifest{Module: "cron"}.Validate())
}

func TestManifest_IsEnabled(t *testing.T) {
	enabled := true
	disabled := false

	assert.True(t, Manifest{Module: "m"}.IsEnabled()) // 缺省启用
	assert.True(t, Manifest{Module: "m", Enabled: &enabled}.IsEnabled())
	assert.False(t, Manifest{Module: "m", Enabled: &disabled}.IsEnabled())
}

// ===== 发现流程测试 =====

func TestDiscover_RegistersValidManifest(t *testing.T) {
	registerStubFactory("disc_valid")

	dir := t.TempDir()
	testutil.WriteManifest(t, dir, "disc_valid")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	require.Equal(t, 1, r.Count())
	state, ok := r.ModuleState("disc_valid")
	require.True(t, ok)
	assert.Equal(t, module.StateRegistered, state)
}

func TestDiscover_BrokenManifestIsolated(t *testing.T) {
	registerStubFactory("disc_survivor")

	dir := t.TempDir()
	testutil.WriteBrokenManifest(t, dir, "broken")
	testutil.WriteManifest(t, dir, "disc_survivor")

	r := New()
	observed, logs := logger.NewObservedLogger()
	r.logger = observed

	r.AddSearchLocation(dir)
	r.Discover()

	// 非法清单只影响自己：恰好注册了一个模块
	assert.Equal(t, 1, r.Count())
	_, ok := r.GetModule("disc_survivor")
	assert.True(t, ok)

	// 且恰好产生一条清单加载失败日志
	errLogs := logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errLogs.Len())
	assert.Contains(t, errLogs.All()[0].Message, "清单加载失败")
}

func TestDiscover_DisabledManifestSkipped(t *testing.T) {
	registerStubFactory("disc_disabled")

	dir := t.TempDir()
	testutil.WriteDisabledManifest(t, dir, "disc_disabled")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	assert.Equal(t, 0, r.Count())
}

func TestDiscover_UnknownFactorySkipped(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, "disc_never_registered")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	assert.Equal(t, 0, r.Count())
}

func TestDiscover_PrivateDirsSkipped(t *testing.T) {
	registerStubFactory("disc_hidden")

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "_drafts/disc_hidden.module.yaml", "module: disc_hidden\n")
	testutil.WriteFile(t, dir, ".git/disc_hidden.module.yaml", "module: disc_hidden\n")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	assert.Equal(t, 0, r.Count())
}

func TestDiscover_NestedDirsScanned(t *testing.T) {
	registerStubFactory("disc_nested")

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "plugins/extra/disc_nested.module.yaml", "module: disc_nested\n")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	_, ok := r.GetModule("disc_nested")
	assert.True(t, ok)
}

func TestDiscover_ParamsInjected(t *testing.T) {
	registerStubFactory("disc_params")

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "disc_params.module.yaml",
		"module: disc_params\nparams:\n  greeting: hello\n  retries: 3\n")

	r := New()
	r.AddSearchLocation(dir)
	r.Discover()

	mod, ok := r.GetModule("disc_params")
	require.True(t, ok)

	stub := mod.(*testutil.StubModule)
	assert.Equal(t, "hello", stub.Params["greeting"])
	assert.EqualValues(t, 3, stub.Params["retries"])
}

func TestDiscover_FactoryPanicIsolated(t *testing.T) {
	module.RegisterFactory(module.Factory{
		Name: "disc_explosive",
		New:  func() module.Module { panic("constructor exploded") },
	})
	registerStubFactory("disc_calm")

	dir := t.TempDir()
	testutil.WriteManifest(t, dir, "disc_explosive")
	testutil.WriteManifest(t, dir, "disc_calm")

	r := New()
	r.AddSearchLocation(dir)

	assert.NotPanics(t, func() {
		r.Discover()
	})
	assert.Equal(t, 1, r.Count())
}

func TestDiscover_MultipleLocations(t *testing.T) {
	registerStubFactory("disc_loc_a")
	registerStubFactory("disc_loc_b")

	dirA := t.TempDir()
	dirB := t.TempDir()
	testutil.WriteManifest(t, dirA, "disc_loc_a")
	testutil.WriteManifest(t, dirB, "disc_loc_b")

	r := New()
	r.AddSearchLocation(dirA)
	r.AddSearchLocation(dirB)
	r.Discover()

	assert.Equal(t, 2, r.Count())
}

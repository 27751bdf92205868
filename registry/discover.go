package registry

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/LUBANX/go-luban-framework/module"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Discover 扫描所有搜索位置，发现并实例化模块
//
// 故障隔离契约：单个清单的加载失败、单个候选的实例化失败
// 都只记录日志并跳过，发现流程永远完整走完所有位置和文件
func (r *ModuleRegistry) Discover() {
	// 编译期工厂注册的同名覆盖在这里统一补警告日志
	for _, name := range module.TakeFactoryCollisions() {
		r.logger.Warn("⚠️ 同名模块工厂被覆盖（后写者胜出）", zap.String("factory", name))
	}

	locations := r.SearchLocations()
	r.logger.Info("🔍 开始模块发现", zap.Int("locations", len(locations)))

	for _, location := range locations {
		r.discoverInLocation(location)
	}

	r.logger.Info("✅ 模块发现完成", zap.Int("modules", r.Count()))
}

// discoverInLocation 在单个搜索位置内递归发现模块
func (r *ModuleRegistry) discoverInLocation(location string) {
	r.logger.Debug("扫描搜索位置", zap.String("path", location))

	err := filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 子目录不可读：跳过该子树，继续其余部分
			r.logger.Warn("搜索位置局部不可读",
				zap.String("path", path),
				zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != location && isPrivateName(name) {
				return fs.SkipDir
			}
			return nil
		}

		if isPrivateName(name) || !isManifestFile(name) {
			return nil
		}

		r.loadManifest(path)
		return nil
	})
	if err != nil {
		r.logger.Error("扫描搜索位置失败",
			zap.String("path", location),
			zap.Error(err))
	}
}

// loadManifest 加载单个清单文件并实例化其引用的模块
func (r *ModuleRegistry) loadManifest(path string) {
	r.logger.Debug("加载模块清单", zap.String("manifest", path))

	manifest, err := readManifest(path)
	if err != nil {
		r.logger.Error("❌ 模块清单加载失败（已跳过）",
			zap.String("manifest", path),
			zap.Error(ErrDiscovery.Wrap(err)))
		return
	}

	if !manifest.IsEnabled() {
		r.logger.Info("⏭️ 模块清单已禁用（跳过）",
			zap.String("manifest", path),
			zap.String("factory", manifest.Module))
		return
	}

	factory, ok := module.LookupFactory(manifest.Module)
	if !ok {
		r.logger.Error("❌ 模块实例化失败（已跳过）",
			zap.String("manifest", path),
			zap.Error(ErrInstantiation.WithMsgf(
				"工厂 '%s' 未注册，已注册工厂: %v", manifest.Module, module.FactoryNames())))
		return
	}

	mod, err := instantiate(factory, manifest.Params)
	if err != nil {
		r.logger.Error("❌ 模块实例化失败（已跳过）",
			zap.String("manifest", path),
			zap.String("factory", manifest.Module),
			zap.Error(ErrInstantiation.Wrap(err)))
		return
	}

	loadID := uuid.NewString()
	r.registerEntry(mod, loadID, path)
	r.logger.Debug("模块实例化成功",
		zap.String("module", mod.Name()),
		zap.String("load_id", loadID))
}

// readManifest 读取并校验清单文件
func readManifest(path string) (Manifest, error) {
	var manifest Manifest

	vp := viper.New()
	vp.SetConfigFile(path)
	if err := vp.ReadInConfig(); err != nil {
		return manifest, fmt.Errorf("读取清单失败: %w", err)
	}
	if err := vp.Unmarshal(&manifest); err != nil {
		return manifest, fmt.Errorf("解析清单失败: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return manifest, fmt.Errorf("清单校验失败: %w", err)
	}
	return manifest, nil
}

// instantiate 构造模块实例（panic 统一成 error，构造失败不影响其他候选）
func instantiate(factory module.Factory, params map[string]any) (mod module.Module, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mod = nil
			err = fmt.Errorf("工厂 '%s' 构造 panic: %v", factory.Name, rec)
		}
	}()

	mod = factory.New()
	if mod == nil {
		return nil, fmt.Errorf("工厂 '%s' 返回 nil 模块", factory.Name)
	}

	if configurable, ok := mod.(module.Configurable); ok && len(params) > 0 {
		if err := configurable.Configure(params); err != nil {
			return nil, fmt.Errorf("模块 '%s' 参数注入失败: %w", mod.Name(), err)
		}
	}
	return mod, nil
}

package registry

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Manifest 模块清单
//
// 清单文件是发现阶段的候选单元：`<任意名>.module.{yaml,yml,json,toml}`，
// 通过工厂名引用编译期注册的模块实现
//
// 示例（cron.module.yaml）：
//
//	module: luban.cron
//	enabled: true
//	params:
//	  timezone: Asia/Shanghai
type Manifest struct {
	// Module 工厂名称（必填）
	Module string `mapstructure:"module"`

	// Enabled 是否启用（缺省 true）
	Enabled *bool `mapstructure:"enabled"`

	// Params 模块参数表（实例化后注入 Configurable 模块）
	Params map[string]any `mapstructure:"params"`
}

// Validate 校验清单
func (m Manifest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Module,
			validation.Required.Error("module 字段不能为空"),
			validation.Length(1, 128)),
	)
}

// IsEnabled 清单是否启用（缺省启用）
func (m Manifest) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// manifestExts 清单文件支持的格式
var manifestExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".toml": true,
}

// isManifestFile 判断文件名是否为模块清单（<name>.module.<ext>）
func isManifestFile(name string) bool {
	ext := filepath.Ext(name)
	if !manifestExts[ext] {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(name, ext), ".module")
}

// isPrivateName 实现私有命名约定：下划线或点开头的文件/目录不参与发现
func isPrivateName(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

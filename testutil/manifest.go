package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile 在目录下写入文件（自动创建父目录）
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入文件失败: %v", err)
	}
	return path
}

// WriteManifest 写入一个最小的 yaml 模块清单
func WriteManifest(t *testing.T, dir, moduleName string) string {
	t.Helper()
	return WriteFile(t, dir, moduleName+".module.yaml",
		fmt.Sprintf("module: %s\n", moduleName))
}

// WriteDisabledManifest 写入 enabled: false 的清单
func WriteDisabledManifest(t *testing.T, dir, moduleName string) string {
	t.Helper()
	return WriteFile(t, dir, moduleName+".module.yaml",
		fmt.Sprintf("module: %s\nenabled: false\n", moduleName))
}

// WriteBrokenManifest 写入无法解析的清单（语法非法）
func WriteBrokenManifest(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name+".module.yaml", "module: [unclosed\n  :::\n")
}

package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// FileSource 文件配置数据源
// 文件格式由扩展名决定（yaml/json/toml），交给 viper 解析
type FileSource struct {
	path     string
	priority int
	optional bool
}

// NewFileSource 创建文件数据源
func NewFileSource(path string, priority int) *FileSource {
	return &FileSource{path: path, priority: priority}
}

// NewOptionalFileSource 创建可选文件数据源
// 文件不存在时返回空配置而非错误
func NewOptionalFileSource(path string, priority int) *FileSource {
	return &FileSource{path: path, priority: priority, optional: true}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Priority() int {
	return s.priority
}

// Path 配置文件路径
func (s *FileSource) Path() string {
	return s.path
}

// Load 加载并展平文件配置
func (s *FileSource) Load() (map[string]any, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) && s.optional {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("访问配置文件失败 %s: %w", s.path, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", s.path, err)
	}

	return flatten("", v.AllSettings()), nil
}

// flatten 将嵌套 map 展平为点号分隔的 key
// {"logger": {"level": "info"}} -> {"logger.level": "info"}
func flatten(prefix string, data map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(full, nested) {
				result[k] = v
			}
			continue
		}
		result[full] = value
	}
	return result
}

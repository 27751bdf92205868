package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Loader 配置加载器（多数据源合并）
// 各数据源按优先级从低到高依次加载，高优先级覆盖同名 key
type Loader struct {
	sources     []Source
	merged      map[string]any
	v           *viper.Viper
	loadedFiles []string
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		sources: make([]Source, 0),
		merged:  make(map[string]any),
		v:       viper.New(),
	}
}

// AddSource 添加配置数据源
func (l *Loader) AddSource(source Source) {
	l.sources = append(l.sources, source)
}

// Load 加载并合并所有数据源
func (l *Loader) Load() error {
	sort.SliceStable(l.sources, func(i, j int) bool {
		return l.sources[i].Priority() < l.sources[j].Priority()
	})

	l.merged = make(map[string]any)
	l.loadedFiles = l.loadedFiles[:0]
	for _, source := range l.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("加载数据源 %s 失败: %w", source.Name(), err)
		}
		if fs, ok := source.(*FileSource); ok {
			l.loadedFiles = append(l.loadedFiles, fs.Path())
		}
		for key, value := range data {
			l.merged[key] = value
		}
	}

	l.syncToViper()
	return nil
}

// Reload 重新加载配置
func (l *Loader) Reload() error {
	return l.Load()
}

// syncToViper 把合并结果同步到底层 viper（提供类型化读取与 Unmarshal）
func (l *Loader) syncToViper() {
	v := viper.New()
	for key, value := range l.merged {
		v.Set(key, value)
	}
	l.v = v
}

// Get 读取配置值
func (l *Loader) Get(key string) any {
	return l.v.Get(key)
}

// GetString 读取字符串配置
func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

// GetInt 读取整型配置
func (l *Loader) GetInt(key string) int {
	return l.v.GetInt(key)
}

// GetBool 读取布尔配置
func (l *Loader) GetBool(key string) bool {
	return l.v.GetBool(key)
}

// GetStringSlice 读取字符串切片配置
func (l *Loader) GetStringSlice(key string) []string {
	return l.v.GetStringSlice(key)
}

// IsSet 配置项是否存在
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}

// Unmarshal 把全部配置解析到结构体
func (l *Loader) Unmarshal(out any) error {
	return l.v.Unmarshal(out)
}

// UnmarshalKey 把指定 key 下的配置解析到结构体
func (l *Loader) UnmarshalKey(key string, out any) error {
	return l.v.UnmarshalKey(key, out)
}

// AllSettings 全部配置（嵌套 map 形式）
func (l *Loader) AllSettings() map[string]any {
	return l.v.AllSettings()
}

// LoadedFiles 已加载的配置文件列表（用于启动日志）
func (l *Loader) LoadedFiles() []string {
	return l.loadedFiles
}

// Describe 数据源摘要（按优先级排序），用于启动日志
func (l *Loader) Describe() string {
	names := make([]string, 0, len(l.sources))
	for _, s := range l.sources {
		names = append(names, fmt.Sprintf("%s(p=%d)", s.Name(), s.Priority()))
	}
	return strings.Join(names, " -> ")
}

package config

// DefaultsSource 默认值数据源
// 承载框架内置默认配置，优先级最低，任何其他来源都可覆盖
type DefaultsSource struct {
	values map[string]any
}

// NewDefaultsSource 创建默认值数据源
// values 使用点号分隔的 key，如 {"logger.level": "info"}
func NewDefaultsSource(values map[string]any) *DefaultsSource {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &DefaultsSource{values: copied}
}

func (s *DefaultsSource) Name() string {
	return "defaults"
}

func (s *DefaultsSource) Priority() int {
	return PriorityDefaults
}

func (s *DefaultsSource) Load() (map[string]any, error) {
	result := make(map[string]any, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result, nil
}

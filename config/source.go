package config

// Source 配置数据源接口
// 文件、环境变量、默认值等配置来源都实现该接口
type Source interface {
	// Name 数据源名称（用于日志与排错）
	Name() string

	// Priority 优先级（数值越大优先级越高，高优先级覆盖低优先级）
	Priority() int

	// Load 加载配置数据
	// 返回的 map 使用点号分隔的 key，如 "logger.level"
	Load() (map[string]any, error)
}

// 常用优先级
const (
	PriorityDefaults = 1  // 内置默认值
	PriorityFile     = 10 // 主配置文件
	PriorityEnvFile  = 20 // 环境配置文件（dev.yaml / prod.yaml）
	PriorityEnv      = 50 // 环境变量
)

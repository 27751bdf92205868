package module

// State 模块生命周期状态
//
// 状态机：
//
//	Discovered → Registered → Active → ShutDown
//	                  └────→ Failed（终态）
//
// Failed 和 ShutDown 都是终态，不会再发生迁移
type State int

const (
	StateDiscovered State = iota // 已发现（清单解析成功）
	StateRegistered              // 已注册（实例化成功，等待初始化）
	StateActive                  // 已激活（初始化成功，服务已发布）
	StateFailed                  // 初始化失败（服务被扣留）
	StateShutDown                // 已停止
)

// String 状态字符串表示
func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "Discovered"
	case StateRegistered:
		return "Registered"
	case StateActive:
		return "Active"
	case StateFailed:
		return "Failed"
	case StateShutDown:
		return "ShutDown"
	default:
		return "Unknown"
	}
}

// Terminal 是否为终态
func (s State) Terminal() bool {
	return s == StateFailed || s == StateShutDown
}

package module

// 内置服务名称常量
const (
	ServiceConfig            = "config"             // 配置加载器（由宿主应用发布）
	ServiceExtensionRegistry = "extension_registry" // 扩展点注册中心
	ServiceCron              = "cron"               // 🎯 定时任务服务（cron 模块提供）
	ServiceWorkers           = "workers"            // 🎯 协程池服务（workers 模块提供）
)

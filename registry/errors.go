package registry

import (
	"github.com/LUBANX/go-luban-framework/errcode"
)

// 模块系统错误码（模块码 20）
//
// 三类错误都不会中止发现/启动流程，只隔离到出错的单元：
// 清单加载失败跳过该文件，实例化失败跳过该候选，
// 初始化失败把模块标记为 Failed 并扣留其服务
var (
	// ErrDiscovery 候选清单无法加载/解析（文件被跳过）
	ErrDiscovery = errcode.Register(errcode.New(20, 1, "registry",
		"error.registry.discovery", "模块清单加载失败"))

	// ErrInstantiation 模块工厂构造失败（候选被跳过）
	ErrInstantiation = errcode.Register(errcode.New(20, 2, "registry",
		"error.registry.instantiation", "模块实例化失败"))

	// ErrInitialization 模块 Initialize 失败（模块标记为 Failed，服务被扣留）
	ErrInitialization = errcode.Register(errcode.New(20, 3, "registry",
		"error.registry.initialization", "模块初始化失败"))
)

// Package errcode 提供分层错误码的基础类型和功能
// 错误码格式：MMBBBB（MM = 模块码 2 位，BBBB = 业务码 4 位）
package errcode

import (
	"fmt"
)

// LayeredError 分层错误码
// 支持：错误链、动态消息、上下文数据、errors.Is 按码比较
type LayeredError struct {
	module string         // 模块名（registry、service、extension）
	code   int            // 完整错误码（MMBBBB，如 200001）
	msgKey string         // 消息键（如 "error.registry.discovery"）
	msg    string         // 默认消息
	data   map[string]any // 上下文数据
	cause  error          // 原始错误（错误链）
}

// New 创建分层错误码
// moduleCode: 模块码（10-99）
// businessCode: 业务码（0001-9999）
// module: 模块名
// msgKey: 消息键
// msg: 默认消息
func New(moduleCode, businessCode int, module, msgKey, msg string) *LayeredError {
	return &LayeredError{
		module: module,
		code:   moduleCode*10000 + businessCode,
		msgKey: msgKey,
		msg:    msg,
		data:   make(map[string]any),
	}
}

// Error 实现 error 接口
func (e *LayeredError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Code 获取错误码
func (e *LayeredError) Code() int {
	return e.code
}

// Module 获取模块名
func (e *LayeredError) Module() string {
	return e.module
}

// MsgKey 获取消息键
func (e *LayeredError) MsgKey() string {
	return e.msgKey
}

// Message 获取错误消息
func (e *LayeredError) Message() string {
	return e.msg
}

// Data 获取上下文数据
func (e *LayeredError) Data() map[string]any {
	return e.data
}

// Cause 获取原始错误
func (e *LayeredError) Cause() error {
	return e.cause
}

// Unwrap 支持 Go 1.13+ 错误链
func (e *LayeredError) Unwrap() error {
	return e.cause
}

// WithMsg 替换错误消息（返回新实例，不修改原实例）
func (e *LayeredError) WithMsg(msg string) *LayeredError {
	clone := *e
	clone.msg = msg
	return &clone
}

// WithMsgf 格式化替换错误消息（返回新实例）
func (e *LayeredError) WithMsgf(format string, args ...any) *LayeredError {
	clone := *e
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// WithData 添加单个上下文数据（返回新实例）
func (e *LayeredError) WithData(key string, value any) *LayeredError {
	clone := *e
	clone.data = e.cloneData()
	clone.data[key] = value
	return &clone
}

// Wrap 包装原始错误（返回新实例）
func (e *LayeredError) Wrap(cause error) *LayeredError {
	if cause == nil {
		return e
	}
	clone := *e
	clone.cause = cause
	return &clone
}

// Wrapf 包装原始错误并格式化消息（返回新实例）
func (e *LayeredError) Wrapf(cause error, format string, args ...any) *LayeredError {
	if cause == nil {
		return e.WithMsgf(format, args...)
	}
	clone := *e
	clone.cause = cause
	clone.msg = fmt.Sprintf(format, args...)
	return &clone
}

// Is 支持 errors.Is()（按错误码判等）
func (e *LayeredError) Is(target error) bool {
	t, ok := target.(*LayeredError)
	if !ok {
		return false
	}
	return e.code == t.code
}

// cloneData 克隆上下文数据（深拷贝）
func (e *LayeredError) cloneData() map[string]any {
	data := make(map[string]any, len(e.data))
	for k, v := range e.data {
		data[k] = v
	}
	return data
}

// String 返回错误的字符串表示（用于调试）
func (e *LayeredError) String() string {
	if e.cause != nil {
		return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s, cause:%v}",
			e.code, e.module, e.msg, e.cause)
	}
	return fmt.Sprintf("LayeredError{code:%d, module:%s, msg:%s}",
		e.code, e.module, e.msg)
}

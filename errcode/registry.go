package errcode

import (
	"fmt"
	"sync"
)

// Registry 错误码注册表（防止错误码冲突）
type Registry struct {
	mu    sync.RWMutex
	codes map[int]string // code -> module:msgKey
}

// NewRegistry 创建独立的错误码注册表（测试或多租户场景）
func NewRegistry() *Registry {
	return &Registry{
		codes: make(map[int]string),
	}
}

// globalRegistry 全局错误码注册表
var globalRegistry = NewRegistry()

// Register 注册错误码到全局注册表
// 如果错误码已存在且 msgKey 不同，则 panic（Fail Fast）
func Register(err *LayeredError) *LayeredError {
	return globalRegistry.Register(err)
}

// Register 注册错误码
func (r *Registry) Register(err *LayeredError) *LayeredError {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := err.Code()
	key := fmt.Sprintf("%s:%s", err.Module(), err.MsgKey())

	if existingKey, exists := r.codes[code]; exists {
		if existingKey != key {
			panic(fmt.Sprintf(
				"错误码冲突: %d 已注册为 %s，不能再注册为 %s",
				code, existingKey, key,
			))
		}
		// 相同错误码和键，允许重复注册（幂等）
		return err
	}

	r.codes[code] = key
	return err
}

// GetAll 获取所有已注册的错误码
func (r *Registry) GetAll() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make(map[int]string, len(r.codes))
	for k, v := range r.codes {
		codes[k] = v
	}
	return codes
}

// Count 获取已注册错误码数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// GetAllRegisteredCodes 获取全局注册表的所有错误码
func GetAllRegisteredCodes() map[int]string {
	return globalRegistry.GetAll()
}

package singleinstance

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

var (
	mu   sync.Mutex
	lock *flock.Flock
)

// Acquire 尝试获取单实例锁
// 已有其他实例持有锁时返回 false
func Acquire(path string) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	if lock != nil {
		return true, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("创建锁目录失败: %w", err)
		}
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("获取单实例锁失败: %w", err)
	}
	if !ok {
		return false, nil
	}

	lock = fl
	return true, nil
}

// Release 释放锁
func Release() {
	mu.Lock()
	defer mu.Unlock()

	if lock != nil {
		_ = lock.Unlock()
		lock = nil
	}
}

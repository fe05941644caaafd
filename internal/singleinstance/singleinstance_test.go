package singleinstance

import (
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

func TestAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", ".desktop-cleaner.lock")

	ok, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !ok {
		t.Fatal("Expected first Acquire() to succeed")
	}
	defer Release()

	// 另一个句柄模拟第二个进程
	other := flock.New(path)
	locked, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if locked {
		other.Unlock()
		t.Fatal("Expected lock to be held")
	}

	ok, err = Acquire(path)
	if err != nil || !ok {
		t.Fatalf("Expected re-entrant Acquire() in the same process, got %v %v", ok, err)
	}
}

func TestRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".desktop-cleaner.lock")

	if ok, err := Acquire(path); err != nil || !ok {
		t.Fatalf("Acquire() = %v, %v", ok, err)
	}
	Release()

	other := flock.New(path)
	locked, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if !locked {
		t.Fatal("Expected lock to be free after Release()")
	}
	other.Unlock()
}

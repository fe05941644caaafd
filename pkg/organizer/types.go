package organizer

import (
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-cleaner/internal"
)

// Histogram 扩展名 -> 已处理文件数
type Histogram map[string]int

// RunResult 一次整理的统计结果
type RunResult struct {
	Mode           internal.OperationMode
	MovedCount     int             // 实际移动或删除的文件数
	DisplacedTypes map[string]bool // 被排除而留在原处的文件扩展名
	Elapsed        time.Duration
	Histogram      Histogram
}

// Entry 单个被移动或删除的文件，供运行日志记录
type Entry struct {
	Name        string
	Extension   string
	Category    string
	Source      string
	Destination string // 删除模式下为空
	Size        int64
	Checksum    string
	MIME        string
}

// Journal 接收每个已处理文件的记录
type Journal interface {
	Record(entry Entry) error
}

// Organizer 桌面整理器，负责分类、移动和删除
type Organizer struct {
	Fs      afero.Fs // 文件系统接口，便于测试和抽象
	Journal Journal  // 可选，为 nil 时不探测文件内容
}

package history

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-cleaner/pkg/logger"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

const (
	// TimeLayout 历史记录中的时间格式
	TimeLayout = "2006-01-02 15:04:05"

	// EmptyMessage 没有历史记录时的提示
	EmptyMessage = "No previous runs."
)

// Log 只追加的历史记录文件，每行一条
type Log struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

func New(fs afero.Fs, path string) *Log {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Log{fs: fs, path: path, now: time.Now}
}

// WithClock 替换时间来源，用于测试
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

func (l *Log) Path() string {
	return l.path
}

// FormatEntry 生成一行历史记录（不含换行符）
func FormatEntry(at time.Time, result *organizer.RunResult) string {
	return fmt.Sprintf("%s: Files moved: %d, Time taken: %.2f seconds",
		at.Format(TimeLayout), result.MovedCount, result.Elapsed.Seconds())
}

// Append 追加一条运行摘要
func (l *Log) Append(result *organizer.RunResult) error {
	line := FormatEntry(l.now(), result)

	file, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("打开历史记录文件失败: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("写入历史记录失败: %w", err)
	}

	logger.Get().Debug().Str("path", l.path).Str("entry", line).Msg("历史记录已追加")
	return nil
}

// ReadAll 读取全部历史记录
// 文件不存在时返回 false
func (l *Log) ReadAll() (string, bool, error) {
	data, err := afero.ReadFile(l.fs, l.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取历史记录失败: %w", err)
	}
	return string(data), true, nil
}

// Clear 删除历史记录文件
// 文件不存在时返回 false
func (l *Log) Clear() (bool, error) {
	exists, err := afero.Exists(l.fs, l.path)
	if err != nil {
		return false, fmt.Errorf("检查历史记录文件失败: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := l.fs.Remove(l.path); err != nil {
		return false, fmt.Errorf("删除历史记录失败: %w", err)
	}

	logger.Get().Info().Str("path", l.path).Msg("历史记录已删除")
	return true, nil
}

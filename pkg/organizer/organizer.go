package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/pkg/logger"
)

// New 创建新的整理器
// fs 为 nil 时使用真实文件系统
func New(fs afero.Fs) *Organizer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Organizer{Fs: fs}
}

// Extension 返回文件名最后一个 '.' 之后的部分
// 没有 '.' 的文件名整体作为扩展名
func Extension(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

// Resolve 计算文件的扩展名和目标子目录
// 删除模式下子目录为空
func Resolve(name string, mode internal.OperationMode) (string, string) {
	ext := Extension(name)
	switch mode {
	case internal.ModeFlat:
		return ext, ext
	case internal.ModeGrouped:
		return ext, Category(ext)
	default:
		return ext, ""
	}
}

// Process 整理源目录中的顶层文件
// 文件系统错误直接返回并中止本次运行，已统计的部分随错误一并返回
func (o *Organizer) Process(sourceDir, destRoot string, excluded map[string]bool, mode internal.OperationMode) (*RunResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("未知的操作模式: %q", mode)
	}

	start := time.Now()
	result := &RunResult{
		Mode:           mode,
		DisplacedTypes: make(map[string]bool),
		Histogram:      make(Histogram),
	}
	defer func() {
		result.Elapsed = time.Since(start)
	}()

	log := logger.Get()
	log.Info().
		Str("source", sourceDir).
		Str("destination", destRoot).
		Str("mode", string(mode)).
		Int("excluded", len(excluded)).
		Msg("开始整理")

	// 目标目录可能位于源目录内，源目录必须先存在
	info, err := o.Fs.Stat(sourceDir)
	if err != nil {
		return result, fmt.Errorf("读取源目录失败: %w", err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("源路径不是目录: %s", sourceDir)
	}

	if err := o.Fs.MkdirAll(destRoot, 0755); err != nil {
		return result, fmt.Errorf("创建目标目录失败: %w", err)
	}

	entries, err := afero.ReadDir(o.Fs, sourceDir)
	if err != nil {
		return result, fmt.Errorf("读取源目录失败: %w", err)
	}

	skip := filepath.Base(destRoot)
	for _, info := range entries {
		name := info.Name()
		if name == skip || strings.HasPrefix(name, ".") {
			continue
		}
		// 符号链接按链接目标判断，无法解析的链接跳过
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := o.Fs.Stat(filepath.Join(sourceDir, name))
			if err != nil {
				log.Debug().Err(err).Str("file", name).Msg("无法解析符号链接，跳过")
				continue
			}
			info = target
		}
		// 只处理普通文件，子目录和其他类型全部忽略
		if !info.Mode().IsRegular() {
			continue
		}

		ext, category := Resolve(name, mode)
		if excluded[name] {
			result.DisplacedTypes[ext] = true
			log.Debug().Str("file", name).Msg("文件在排除列表中，保留原位")
			continue
		}

		entry := Entry{
			Name:      name,
			Extension: ext,
			Category:  category,
			Source:    filepath.Join(sourceDir, name),
			Size:      info.Size(),
		}
		if mode.IsMove() {
			entry.Destination = filepath.Join(destRoot, category, name)
		}

		if o.Journal != nil {
			if err := o.probe(&entry); err != nil {
				return result, err
			}
		}

		if err := o.apply(entry); err != nil {
			return result, err
		}

		result.Histogram[ext]++
		result.MovedCount++

		if o.Journal != nil {
			if err := o.Journal.Record(entry); err != nil {
				return result, fmt.Errorf("记录文件失败: %w", err)
			}
		}
	}

	log.Info().
		Int("moved", result.MovedCount).
		Int("types", len(result.Histogram)).
		Int("displaced", len(result.DisplacedTypes)).
		Msg("整理完成")

	return result, nil
}

// apply 执行移动或删除
func (o *Organizer) apply(entry Entry) error {
	if entry.Destination == "" {
		if err := o.Fs.Remove(entry.Source); err != nil {
			return fmt.Errorf("删除文件失败: %w", err)
		}
		logger.Get().Debug().Str("file", entry.Source).Msg("文件已删除")
		return nil
	}

	if err := o.Fs.MkdirAll(filepath.Dir(entry.Destination), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if err := o.moveFile(entry.Source, entry.Destination); err != nil {
		return fmt.Errorf("移动文件失败: %w", err)
	}

	logger.Get().Debug().
		Str("source", entry.Source).
		Str("destination", entry.Destination).
		Str("type", entry.Extension).
		Msg("文件已移动")
	return nil
}

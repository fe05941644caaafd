package organizer

import (
	"fmt"
	"io"

	"github.com/moyu-x/desktop-cleaner/pkg/logger"
)

// moveFile 使用 rename 操作将文件从源路径移动到目标路径
// 目标已存在时直接覆盖，不做重命名
func (o *Organizer) moveFile(src, dst string) error {
	err := o.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}

	// 如果 Rename 失败（可能是跨卷移动），尝试复制后删除
	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := o.copyFile(src, dst); err != nil {
		return err
	}

	if err := o.Fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

// copyFile 复制文件内容并保留权限位
func (o *Organizer) copyFile(src, dst string) error {
	sourceFile, err := o.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	destFile, err := o.Fs.Create(dst)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	return o.Fs.Chmod(dst, info.Mode())
}

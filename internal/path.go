package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath 展开开头的 ~ 为用户主目录，并转换为绝对路径
// 只处理 "~" 和 "~/..."，"~user" 形式保持原样
func ExpandPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("路径不能为空")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Abs(path)
}

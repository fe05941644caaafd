package cmd

import (
	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/internal/menu"
	"github.com/moyu-x/desktop-cleaner/pkg/database"
)

// journal 把数据库适配为菜单使用的运行日志
type journal struct {
	db *database.Database
}

func (j journal) Begin(mode internal.OperationMode, sourceDir string) (menu.Run, error) {
	run, err := j.db.BeginRun(mode, sourceDir)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (j journal) Clear() error {
	return j.db.Clear()
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/moyu-x/desktop-cleaner/pkg/database"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
	"github.com/moyu-x/desktop-cleaner/pkg/report"
)

var recentLimit int

// statsCmd 从运行日志中汇总历史数据
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "显示运行日志中的统计信息",
	Long: `读取运行日志数据库，输出所有运行中各扩展名的文件总数，
以及最近几次运行的记录。`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled {
		return errors.New("运行日志已在设置中禁用")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("打开运行日志数据库失败: %w", err)
	}
	defer db.Close()

	return writeStats(cmd.OutOrStdout(), db, recentLimit)
}

func writeStats(w io.Writer, db *database.Database, limit int) error {
	totals, err := db.ExtensionTotals()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Files by extension:")
	if err := report.WriteBars(w, organizer.Histogram(totals), report.DefaultBarWidth); err != nil {
		return err
	}

	size, err := db.TotalBytes()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Total size handled: %s\n", humanize.Bytes(uint64(size)))

	runs, err := db.RecentRuns(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nRecent runs:")
	if len(runs) == 0 {
		fmt.Fprintln(w, "No previous runs.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%s  %-12s  files: %-4d  %.2fs  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.MovedCount,
			(time.Duration(run.ElapsedMs) * time.Millisecond).Seconds(),
			run.SourceDir,
		)
	}
	return nil
}

func init() {
	statsCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "显示最近几次运行")
	rootCmd.AddCommand(statsCmd)
}

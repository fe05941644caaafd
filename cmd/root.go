package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/desktop-cleaner/config"
	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/internal/menu"
	"github.com/moyu-x/desktop-cleaner/internal/singleinstance"
	"github.com/moyu-x/desktop-cleaner/pkg/database"
	"github.com/moyu-x/desktop-cleaner/pkg/history"
	"github.com/moyu-x/desktop-cleaner/pkg/logger"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
	"github.com/moyu-x/desktop-cleaner/pkg/profile"
)

// 设置为 1 时跳过单实例检查
const allowMultiEnv = "DESKTOP_CLEANER_ALLOW_MULTI"

var (
	// 命令行参数
	settingsFile string // 应用设置文件
	profileFile  string // config.ini 路径
	historyFile  string // history.txt 路径
	dbPath       string // 运行日志数据库
	logLevel     string
	logFile      string
	verbose      bool
	noColor      bool
)

var errAlreadyRunning = errors.New("另一个实例正在运行")

// rootCmd 不带子命令时启动交互式菜单
var rootCmd = &cobra.Command{
	Use:   "desktop-cleaner",
	Short: "按扩展名整理桌面文件的交互式工具",
	Long: `Desktop Cleaner 是一个交互式命令行工具，用于整理桌面目录。

主要功能:
- 按扩展名把文件移动到独立目录，或按类别分组
- 删除桌面上除排除列表以外的所有文件
- 记录每次运行的历史，并生成统计图表`,
	SilenceUsage: true,
	RunE:         runMenu,
}

// Execute 由 main.main() 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "settings", "", "应用设置文件（默认查找 settings.yaml）")
	flags.StringVar(&profileFile, "config-file", "", "配置文件路径（默认: config.ini）")
	flags.StringVar(&historyFile, "history-file", "", "历史记录文件路径（默认: history.txt）")
	flags.StringVar(&dbPath, "db", "", "运行日志数据库路径")
	flags.StringVar(&logLevel, "log-level", "", "日志级别 (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "日志文件路径")
	flags.BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
	flags.BoolVar(&noColor, "no-color", false, "禁用彩色输出")
}

// loadConfig 读取设置并应用命令行参数，随后初始化日志
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if settingsFile != "" {
		cfg, err = config.LoadFile(settingsFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("读取设置失败: %w", err)
	}

	if profileFile != "" {
		cfg.Profile.Path = profileFile
	}
	if historyFile != "" {
		cfg.History.Path = historyFile
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if noColor {
		color.NoColor = true
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Get()

	if os.Getenv(allowMultiEnv) != "1" {
		lockPath := filepath.Join(filepath.Dir(cfg.Profile.Path), internal.LockFileName)
		ok, err := singleinstance.Acquire(lockPath)
		if err != nil {
			return err
		}
		if !ok {
			log.Error().Str("lock", lockPath).Msg("检测到另一个正在运行的实例")
			return errAlreadyRunning
		}
		defer singleinstance.Release()
	}

	fs := afero.NewOsFs()
	opts := menu.Options{
		In:              cmd.InOrStdin(),
		Out:             cmd.OutOrStdout(),
		Fs:              fs,
		Profiles:        profile.NewStore(fs, cfg.Profile.Path),
		History:         history.New(fs, cfg.History.Path),
		Organizer:       organizer.New(fs),
		ChartsPath:      cfg.Charts.Path,
		DestinationName: cfg.Organizer.DestinationName,
		ExitOnEmptyMove: cfg.Menu.ExitOnEmptyMove,
	}

	if cfg.Database.Enabled {
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			// 运行日志是可选功能，打开失败时继续运行
			log.Warn().Err(err).Str("path", cfg.Database.Path).Msg("无法打开运行日志数据库，已禁用")
		} else {
			defer db.Close()
			opts.Journal = journal{db: db}
		}
	}

	log.Debug().
		Str("profile", cfg.Profile.Path).
		Str("history", cfg.History.Path).
		Bool("journal", opts.Journal != nil).
		Msg("启动交互式菜单")

	return menu.New(opts).Run()
}

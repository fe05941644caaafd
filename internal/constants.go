package internal

const (
	// 用户配置文件默认路径（INI，兼容旧版 config.ini）
	DefaultProfilePath = "config.ini"

	// 历史记录文件默认路径
	DefaultHistoryPath = "history.txt"

	// 图表输出默认路径
	DefaultChartsPath = "charts.html"

	// 运行日志数据库默认路径
	DefaultDatabasePath = "~/.desktop-cleaner/journal.db"

	// 目标根目录名称，位于源目录之下
	DefaultDestinationName = "Desktop Cleaner"

	// 单实例锁文件名
	LockFileName = ".desktop-cleaner.lock"
)

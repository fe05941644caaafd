package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/pkg/logger"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
)

// RunRecord 一次整理或删除运行
type RunRecord struct {
	ID         string    `gorm:"primaryKey"`
	Mode       string    `gorm:"not null"`
	SourceDir  string    `gorm:"not null"`
	MovedCount int       `gorm:"not null"`
	ElapsedMs  int64     `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
}

func (RunRecord) TableName() string {
	return "runs"
}

// FileRecord 一个被移动或删除的文件
type FileRecord struct {
	ID          int64  `gorm:"primaryKey"`
	RunID       string `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Extension   string `gorm:"index"`
	Category    string
	Source      string `gorm:"not null"`
	Destination string
	Size        int64
	Checksum    string `gorm:"index"`
	MIME        string
	CreatedAt   time.Time `gorm:"not null"`
}

func (FileRecord) TableName() string {
	return "run_files"
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := internal.ExpandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("初始化数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("创建数据库表失败: %w", err)
	}

	logger.Get().Debug().Msg("数据库初始化完成")
	return &Database{db: db}, nil
}

func createSchema(db *gorm.DB) error {
	return db.AutoMigrate(&RunRecord{}, &FileRecord{})
}

// Run 正在进行的一次运行，实现 organizer.Journal
type Run struct {
	db     *gorm.DB
	record RunRecord
}

// BeginRun 创建一条运行记录
func (d *Database) BeginRun(mode internal.OperationMode, sourceDir string) (*Run, error) {
	record := RunRecord{
		ID:        uuid.NewString(),
		Mode:      string(mode),
		SourceDir: sourceDir,
		StartedAt: time.Now(),
	}
	if err := d.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("创建运行记录失败: %w", err)
	}

	logger.Get().Debug().Str("run", record.ID).Str("mode", record.Mode).Msg("运行记录已创建")
	return &Run{db: d.db, record: record}, nil
}

func (r *Run) ID() string {
	return r.record.ID
}

// Record 写入一个文件记录
func (r *Run) Record(entry organizer.Entry) error {
	file := &FileRecord{
		RunID:       r.record.ID,
		Name:        entry.Name,
		Extension:   entry.Extension,
		Category:    entry.Category,
		Source:      entry.Source,
		Destination: entry.Destination,
		Size:        entry.Size,
		Checksum:    entry.Checksum,
		MIME:        entry.MIME,
		CreatedAt:   time.Now(),
	}
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("插入文件记录失败: %w", err)
	}
	return nil
}

// Finish 保存运行结果
func (r *Run) Finish(result *organizer.RunResult) error {
	finished := time.Now()
	updates := map[string]any{
		"moved_count": result.MovedCount,
		"elapsed_ms":  result.Elapsed.Milliseconds(),
		"finished_at": finished,
	}
	if err := r.db.Model(&RunRecord{}).Where("id = ?", r.record.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("更新运行记录失败: %w", err)
	}

	r.record.MovedCount = result.MovedCount
	r.record.ElapsedMs = result.Elapsed.Milliseconds()
	r.record.FinishedAt = &finished
	return nil
}

// ExtensionTotals 统计所有运行中每种扩展名的文件数
func (d *Database) ExtensionTotals() (map[string]int, error) {
	var rows []struct {
		Extension string
		Total     int
	}
	err := d.db.Model(&FileRecord{}).
		Select("extension, COUNT(*) AS total").
		Group("extension").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("统计扩展名失败: %w", err)
	}

	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.Extension] = row.Total
	}
	return totals, nil
}

// TotalBytes 所有记录文件的总大小
func (d *Database) TotalBytes() (int64, error) {
	var total int64
	if err := d.db.Model(&FileRecord{}).Select("COALESCE(SUM(size), 0)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("统计文件大小失败: %w", err)
	}
	return total, nil
}

// RecentRuns 按开始时间倒序返回最近的运行
func (d *Database) RecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	if err := d.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("查询运行记录失败: %w", err)
	}
	return runs, nil
}

// Clear 删除所有运行和文件记录
func (d *Database) Clear() error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FileRecord{}).Error; err != nil {
			return fmt.Errorf("清空文件记录失败: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&RunRecord{}).Error; err != nil {
			return fmt.Errorf("清空运行记录失败: %w", err)
		}
		return nil
	})
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

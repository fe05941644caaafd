package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/moyu-x/desktop-cleaner/pkg/logger"
)

const (
	sectionPaths   = "Paths"
	nameSourcePath = "DesktopPath"
	nameExcluded   = "ExcludedFiles"

	// viper 读取时键名不区分大小写
	keySourcePath = "paths.desktoppath"
	keyExcluded   = "paths.excludedfiles"

	// 排除列表分隔符，文件名中的逗号不做转义
	separator = ","
)

// Profile 用户配置：待整理目录和排除的文件名
type Profile struct {
	SourcePath    string
	ExcludedNames []string
}

// Excluded 返回排除列表的集合形式
func (p Profile) Excluded() map[string]bool {
	set := make(map[string]bool, len(p.ExcludedNames))
	for _, name := range p.ExcludedNames {
		set[name] = true
	}
	return set
}

// DestinationRoot 返回整理结果所在的目录
func (p Profile) DestinationRoot(name string) string {
	return filepath.Join(p.SourcePath, name)
}

// Store 基于 INI 文件的配置存储
// 格式与旧版 config.ini 相同：[Paths] 下的 DesktopPath 和 ExcludedFiles
type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Exists 配置文件是否已存在
func (s *Store) Exists() (bool, error) {
	return afero.Exists(s.fs, s.path)
}

// Load 读取配置
func (s *Store) Load() (Profile, error) {
	v := s.newViper()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return Profile{}, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if !v.IsSet(keySourcePath) {
		return Profile{}, fmt.Errorf("配置文件缺少 Paths.DesktopPath: %s", s.path)
	}

	p := Profile{
		SourcePath:    v.GetString(keySourcePath),
		ExcludedNames: splitNames(v.GetString(keyExcluded)),
	}

	logger.Get().Debug().
		Str("path", s.path).
		Str("source", p.SourcePath).
		Int("excluded", len(p.ExcludedNames)).
		Msg("配置加载完成")
	return p, nil
}

// Save 整体覆盖写入配置，返回实际保存的值
func (s *Store) Save(p Profile) (Profile, error) {
	// 与 configparser 一致，值两端的空白不保留
	saved := Profile{
		SourcePath:    strings.TrimSpace(p.SourcePath),
		ExcludedNames: splitNames(strings.TrimSpace(strings.Join(p.ExcludedNames, separator))),
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return Profile{}, fmt.Errorf("创建配置目录失败: %w", err)
		}
	}

	if err := s.write(saved); err != nil {
		return Profile{}, err
	}

	logger.Get().Info().Str("path", s.path).Msg("配置已保存")
	return saved, nil
}

// write 按旧版 config.ini 的格式写入 [Paths] 段
// 关闭行内注释后，含 '#' 或 ';' 的文件名按原样写出，不加反引号
func (s *Store) write(p Profile) error {
	cfg := ini.Empty(iniOptions)
	sec, err := cfg.NewSection(sectionPaths)
	if err != nil {
		return fmt.Errorf("创建配置段失败: %w", err)
	}
	if _, err := sec.NewKey(nameSourcePath, p.SourcePath); err != nil {
		return fmt.Errorf("写入配置项失败: %w", err)
	}
	if _, err := sec.NewKey(nameExcluded, strings.Join(p.ExcludedNames, separator)); err != nil {
		return fmt.Errorf("写入配置项失败: %w", err)
	}

	file, err := s.fs.Create(s.path)
	if err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	if _, err := cfg.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// 旧版文件中 '#' 和 ';' 是文件名的一部分，不是注释
var iniOptions = ini.LoadOptions{IgnoreInlineComment: true}

func (s *Store) newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.IniLoadOptions(iniOptions))
	v.SetFs(s.fs)
	v.SetConfigType("ini")
	return v
}

// splitNames 按逗号拆分，丢弃空项
func splitNames(joined string) []string {
	names := []string{}
	for _, name := range strings.Split(joined, separator) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

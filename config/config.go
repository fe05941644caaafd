package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/desktop-cleaner/internal"
)

type Config struct {
	Profile struct {
		Path string
	}
	History struct {
		Path string
	}
	Charts struct {
		Path string
	}
	Database struct {
		Enabled bool
		Path    string
	}
	Logging struct {
		Level string
		File  string
	}
	Menu struct {
		// 没有文件可移动时直接退出程序（旧版行为）
		ExitOnEmptyMove bool `mapstructure:"exit_on_empty_move"`
	}
	Organizer struct {
		DestinationName string `mapstructure:"destination_name"`
	}
}

// Load 读取应用设置
// 依次查找 $HOME/.desktop-cleaner、当前目录和 /etc/desktop-cleaner 下的 settings.yaml
func Load() (*Config, error) {
	return load(viper.New(), "")
}

// LoadFile 从指定文件读取应用设置
func LoadFile(path string) (*Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("settings")
		v.AddConfigPath("$HOME/.desktop-cleaner")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/desktop-cleaner")
	}

	v.SetDefault("profile.path", internal.DefaultProfilePath)
	v.SetDefault("history.path", internal.DefaultHistoryPath)
	v.SetDefault("charts.path", internal.DefaultChartsPath)
	v.SetDefault("database.enabled", true)
	v.SetDefault("database.path", internal.DefaultDatabasePath)
	v.SetDefault("logging.level", "warn")
	// 没有默认值的键不会被 AutomaticEnv 解析进结构体
	v.SetDefault("logging.file", "")
	v.SetDefault("menu.exit_on_empty_move", false)
	v.SetDefault("organizer.destination_name", internal.DefaultDestinationName)

	v.SetEnvPrefix("DESKTOP_CLEANER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Package config loads and validates the application configuration from an
// optional YAML file, environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir string       `mapstructure:"data_dir" validate:"required"`
	Log     LogConfig    `mapstructure:"log"`
	Canvas  CanvasConfig `mapstructure:"canvas"`
	Export  ExportConfig `mapstructure:"export"`
}

// LogConfig selects logger verbosity and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// CanvasConfig fixes the whiteboard page dimensions. Pages are created at
// this size and are not resized on load.
type CanvasConfig struct {
	Width  int `mapstructure:"width" validate:"gt=0"`
	Height int `mapstructure:"height" validate:"gt=0"`
}

// ExportConfig holds PDF export settings.
type ExportConfig struct {
	PageSize    string `mapstructure:"page_size" validate:"oneof=Letter A4"`
	ImageWidth  int    `mapstructure:"image_width" validate:"gt=0"`
	ImageHeight int    `mapstructure:"image_height" validate:"gt=0"`
}

// Load reads the configuration, applying defaults for anything unset.
// configFile may be empty, in which case config.yaml is searched for in the
// working directory and the user config directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", ".config", "notedesk"))
	}

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("canvas.width", 600)
	v.SetDefault("canvas.height", 400)
	v.SetDefault("export.page_size", "Letter")
	v.SetDefault("export.image_width", 400)
	v.SetDefault("export.image_height", 300)

	v.SetEnvPrefix("NOTEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// defaultDataDir mirrors the historical application-data location:
// %LOCALAPPDATA%\notedesk on Windows, ~/.local/share/notedesk elsewhere.
func defaultDataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, "notedesk")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "notedesk-data")
	}
	return filepath.Join(home, ".local", "share", "notedesk")
}

// Package config loads and saves the application configuration via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Reader  ReaderConfig  `mapstructure:"reader"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the platform connection and credentials.
type ServerConfig struct {
	URL      string `mapstructure:"url"`
	Token    string `mapstructure:"token"`
	UserID   string `mapstructure:"user_id"`
	Username string `mapstructure:"username"`
}

// ReaderConfig holds chapter-reader presentation settings.
type ReaderConfig struct {
	LineWidth   int `mapstructure:"line_width"`   // max text column width
	LineSpacing int `mapstructure:"line_spacing"` // blank lines between paragraphs
}

// UIConfig holds general interface settings.
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	DefaultView string `mapstructure:"default_view"` // browse / rankings / library
	PageSize    int    `mapstructure:"page_size"`    // rows fetched per page
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Reader: ReaderConfig{
			LineWidth:   80,
			LineSpacing: 1,
		},
		UI: UIConfig{
			Theme:       "default",
			DefaultView: "browse",
			PageSize:    20,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "inkwell", "inkwell.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "inkwell", "inkwell.log")
	}
}

func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "inkwell")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "inkwell")
	}
}

// DefaultStatePath returns the directory for the durable client state store.
func DefaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "inkwell", "state")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "inkwell", "state")
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	cfg := Default()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("INKWELL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing config file is fine, defaults apply.
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.user_id", cfg.Server.UserID)
	viper.Set("server.username", cfg.Server.Username)

	viper.Set("reader.line_width", cfg.Reader.LineWidth)
	viper.Set("reader.line_spacing", cfg.Reader.LineSpacing)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.default_view", cfg.UI.DefaultView)
	viper.Set("ui.page_size", cfg.UI.PageSize)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	return writeConfig()
}

// ClearCredentials removes the saved token and user identity while keeping
// the server URL and all presentation settings.
func ClearCredentials() error {
	viper.Set("server.token", "")
	viper.Set("server.user_id", "")
	viper.Set("server.username", "")
	return writeConfig()
}

func writeConfig() error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// HasServer reports whether a server URL is configured.
func (c *Config) HasServer() bool {
	return c.Server.URL != ""
}

// SignedIn reports whether saved credentials exist.
func (c *Config) SignedIn() bool {
	return c.Server.Token != ""
}

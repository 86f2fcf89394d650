// Package config provides configuration management for git-onboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// dirName is the per-user directory holding config, database and log.
	dirName = ".gitonboard"
	// defaultDataDir is the unexpanded form stored in a fresh config file.
	defaultDataDir = "~/" + dirName
)

// Config holds all configuration for the git-onboard application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Git           GitConfig          `mapstructure:"git"`
	UI            UIConfig           `mapstructure:"ui"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// GitConfig controls how the git binary is invoked.
type GitConfig struct {
	Binary        string `mapstructure:"binary"`
	DefaultBranch string `mapstructure:"default_branch"`
	RemoteName    string `mapstructure:"remote_name"`
	LogLimit      int    `mapstructure:"log_limit"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	ClearScreen bool `mapstructure:"clear_screen"`
	Plain       bool `mapstructure:"plain"`
	// ProtectedPaths replaces the built-in list of path fragments where
	// init is refused. Empty means use the built-in list.
	ProtectedPaths []string `mapstructure:"protected_paths"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig holds theme colors.
type ThemeConfig struct {
	ColorTitle   string `mapstructure:"color_title"`
	ColorCommand string `mapstructure:"color_command"`
	ColorExplain string `mapstructure:"color_explain"`
	ColorSuccess string `mapstructure:"color_success"`
	ColorError   string `mapstructure:"color_error"`
	ColorHelp    string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:   "#7C6FE0",
		ColorCommand: "#4ECDC4",
		ColorExplain: "#A0AEC0",
		ColorSuccess: "#2ECC71",
		ColorError:   "#E74C3C",
		ColorHelp:    "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Git: GitConfig{
			Binary:        "git",
			DefaultBranch: "main",
			RemoteName:    "origin",
			LogLimit:      10,
		},
		UI: UIConfig{
			ClearScreen: true,
			Plain:       false,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first use.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.ExpandDataDir(); err != nil {
		return nil, err
	}
	cfg.fillBlanks()

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	for key, value := range cfg.values() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName, "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "onboard.db")
}

// GetLogPath returns the path to the log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "onboard.log")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range DefaultConfig().values() {
		v.SetDefault(key, value)
	}
}

// values flattens cfg into dotted viper keys.
func (c *Config) values() map[string]any {
	protected := c.UI.ProtectedPaths
	if protected == nil {
		protected = []string{}
	}
	return map[string]any{
		"first_run":             c.FirstRun,
		"git.binary":            c.Git.Binary,
		"git.default_branch":    c.Git.DefaultBranch,
		"git.remote_name":       c.Git.RemoteName,
		"git.log_limit":         c.Git.LogLimit,
		"ui.clear_screen":       c.UI.ClearScreen,
		"ui.plain":              c.UI.Plain,
		"ui.protected_paths":    protected,
		"notifications.enabled": c.Notifications.Enabled,
		"storage.data_dir":      c.Storage.DataDir,
		"log.level":             c.Log.Level,
		"theme.color_title":     c.Theme.ColorTitle,
		"theme.color_command":   c.Theme.ColorCommand,
		"theme.color_explain":   c.Theme.ColorExplain,
		"theme.color_success":   c.Theme.ColorSuccess,
		"theme.color_error":     c.Theme.ColorError,
		"theme.color_help":      c.Theme.ColorHelp,
	}
}

// ExpandDataDir resolves a leading ~ in the data directory. Load calls it.
func (c *Config) ExpandDataDir() error {
	dir := c.Storage.DataDir
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	switch {
	case dir == "" || dir == defaultDataDir:
		c.Storage.DataDir = filepath.Join(homeDir, dirName)
	case dir == "~":
		c.Storage.DataDir = homeDir
	default:
		c.Storage.DataDir = filepath.Join(homeDir, dir[2:])
	}
	return nil
}

// fillBlanks restores defaults for values a hand-edited file left empty.
func (c *Config) fillBlanks() {
	d := DefaultConfig()
	if c.Git.Binary == "" {
		c.Git.Binary = d.Git.Binary
	}
	if c.Git.DefaultBranch == "" {
		c.Git.DefaultBranch = d.Git.DefaultBranch
	}
	if c.Git.RemoteName == "" {
		c.Git.RemoteName = d.Git.RemoteName
	}
	if c.Git.LogLimit <= 0 {
		c.Git.LogLimit = d.Git.LogLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// EditableKeys lists the settings that `onboard config` can change.
func EditableKeys() []string {
	keys := []string{
		"git.binary",
		"git.default_branch",
		"git.remote_name",
		"git.log_limit",
		"ui.clear_screen",
		"ui.plain",
		"ui.protected_paths",
		"notifications.enabled",
		"log.level",
	}
	sort.Strings(keys)
	return keys
}

// Get returns the display form of a setting.
func (c *Config) Get(key string) (string, error) {
	v, ok := c.values()[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	if list, ok := v.([]string); ok {
		return strings.Join(list, ","), nil
	}
	return fmt.Sprint(v), nil
}

// Set parses raw and stores it under key.
func (c *Config) Set(key, raw string) error {
	raw = strings.TrimSpace(raw)
	var err error
	switch key {
	case "git.binary":
		c.Git.Binary, err = nonEmpty(key, raw)
	case "git.default_branch":
		c.Git.DefaultBranch, err = nonEmpty(key, raw)
	case "git.remote_name":
		c.Git.RemoteName, err = nonEmpty(key, raw)
	case "git.log_limit":
		var n int
		n, err = strconv.Atoi(raw)
		if err == nil && n <= 0 {
			err = fmt.Errorf("%s must be a positive number", key)
		}
		if err == nil {
			c.Git.LogLimit = n
		}
	case "ui.clear_screen":
		c.UI.ClearScreen, err = strconv.ParseBool(raw)
	case "ui.plain":
		c.UI.Plain, err = strconv.ParseBool(raw)
	case "ui.protected_paths":
		c.UI.ProtectedPaths = splitList(raw)
	case "notifications.enabled":
		c.Notifications.Enabled, err = strconv.ParseBool(raw)
	case "log.level":
		switch raw {
		case "debug", "info", "warn", "error":
			c.Log.Level = raw
		default:
			err = fmt.Errorf("%s must be one of debug, info, warn, error", key)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func nonEmpty(key, raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}
	return raw, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds all configuration options for sbp.
type Config struct {
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log"`
	Registers RegistersConfig `mapstructure:"registers" toml:"registers" yaml:"registers"`
	Prompts   PromptsConfig   `mapstructure:"prompts" toml:"prompts" yaml:"prompts"`
	Rectangle RectangleConfig `mapstructure:"rectangle" toml:"rectangle" yaml:"rectangle"`
	Editor    EditorConfig    `mapstructure:"editor" toml:"editor" yaml:"editor"`
	Plugins   PluginsConfig   `mapstructure:"plugins" toml:"plugins" yaml:"plugins"`

	// Source is the file the config was read from, if any.
	Source string `mapstructure:"-" toml:"-" yaml:"-"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level" yaml:"level"`
	// File receives log output. Empty means stderr for batch commands and
	// no logging for the terminal editor.
	File string `mapstructure:"file" toml:"file" yaml:"file"`
}

// RegistersConfig controls the register store and its prompts.
type RegistersConfig struct {
	// CaptureOnConfirm makes capture wait for the prompt to be confirmed
	// instead of storing on the first typed character.
	CaptureOnConfirm bool `mapstructure:"capture_on_confirm" toml:"capture_on_confirm" yaml:"capture_on_confirm"`
	// PersistFile keeps registers across sessions when set.
	PersistFile string `mapstructure:"persist_file" toml:"persist_file" yaml:"persist_file"`
}

// PromptsConfig holds the register prompt labels.
type PromptsConfig struct {
	Capture string `mapstructure:"capture" toml:"capture" yaml:"capture"`
	Insert  string `mapstructure:"insert" toml:"insert" yaml:"insert"`
}

// RectangleConfig holds rectangle editing settings.
type RectangleConfig struct {
	ContentLabel string `mapstructure:"content_label" toml:"content_label" yaml:"content_label"`
}

// EditorConfig holds settings of the built-in editing surface.
type EditorConfig struct {
	MaxUndoEntries int `mapstructure:"max_undo_entries" toml:"max_undo_entries" yaml:"max_undo_entries"`
	ViewportHeight int `mapstructure:"viewport_height" toml:"viewport_height" yaml:"viewport_height"`
}

// PluginsConfig controls Lua scripting.
type PluginsConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" yaml:"enabled"`
	// Scripts run at editor startup, in order.
	Scripts []string `mapstructure:"scripts" toml:"scripts" yaml:"scripts"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Prompts: PromptsConfig{
			Capture: "Store into register:",
			Insert:  "Insert from register:",
		},
		Rectangle: RectangleConfig{
			ContentLabel: "Content:",
		},
		Editor: EditorConfig{
			MaxUndoEntries: 1000,
			ViewportHeight: 24,
		},
		Plugins: PluginsConfig{
			Enabled: true,
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Key: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	if c.Editor.MaxUndoEntries <= 0 {
		return &ValidationError{Key: "editor.max_undo_entries", Message: "must be positive"}
	}
	if c.Editor.ViewportHeight <= 0 {
		return &ValidationError{Key: "editor.viewport_height", Message: "must be positive"}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("registers.capture_on_confirm", d.Registers.CaptureOnConfirm)
	v.SetDefault("registers.persist_file", d.Registers.PersistFile)
	v.SetDefault("prompts.capture", d.Prompts.Capture)
	v.SetDefault("prompts.insert", d.Prompts.Insert)
	v.SetDefault("rectangle.content_label", d.Rectangle.ContentLabel)
	v.SetDefault("editor.max_undo_entries", d.Editor.MaxUndoEntries)
	v.SetDefault("editor.viewport_height", d.Editor.ViewportHeight)
	v.SetDefault("plugins.enabled", d.Plugins.Enabled)
	v.SetDefault("plugins.scripts", d.Plugins.Scripts)
}

// Loader reads configuration through viper. A Loader may be reused to
// reload the same sources.
type Loader struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewLoader creates a loader. An empty path searches .sbp/ in the working
// directory and then the user config directory for a file named config.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SBP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".sbp")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	return &Loader{v: v, path: path}
}

// Viper exposes the underlying instance so command line flags can be
// bound to settings.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads the config file, if any, and returns the merged settings. A
// missing file is not an error unless it was named explicitly.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			path := l.path
			if path == "" {
				path = l.v.ConfigFileUsed()
			}
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	cfg := Defaults()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, &ParseError{Path: l.v.ConfigFileUsed(), Err: err}
	}
	cfg.Source = l.v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the file used by the last Load, or "".
func (l *Loader) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.v.ConfigFileUsed()
}

// Load is a convenience for NewLoader(path).Load().
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sbp")
}

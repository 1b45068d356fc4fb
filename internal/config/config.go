// Package config loads LingoCalm settings from defaults, an optional
// config.yaml and LINGOCALM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/lingocalm/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. LINGOCALM_LOG_LEVEL.
const EnvPrefix = "LINGOCALM"

// Config holds all configuration for the application.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Lesson  LessonConfig  `mapstructure:"lesson"`
}

// StorageConfig selects where progress is kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
}

// AuthConfig configures accounts and sessions.
type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	TokenPath  string        `mapstructure:"token_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// LLMConfig picks the lesson generator.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
}

// SpeechConfig configures pronunciation playback.
type SpeechConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CacheDir string `mapstructure:"cache_dir"`
	Player   string `mapstructure:"player"`
}

// LessonConfig tunes lesson generation.
type LessonConfig struct {
	WordCount int `mapstructure:"word_count"`
}

// Load reads configuration. file may name a config file explicitly; when
// empty, config.yaml is searched for in the user config dir and the
// working directory. A missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	data := DataDir()

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.url", "")

	// Local installs are single-user; the secret only needs to be stable.
	v.SetDefault("auth.secret", "lingocalm-local-secret")
	v.SetDefault("auth.session_ttl", 30*24*time.Hour)
	v.SetDefault("auth.token_path", filepath.Join(data, "session"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")

	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.cache_dir", filepath.Join(data, "audio"))
	v.SetDefault("speech.player", "")

	v.SetDefault("lesson.word_count", 5)
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "local":
	case "remote":
		if c.Storage.URL == "" {
			return errors.New("storage.url is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want local or remote)", c.Storage.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Lesson.WordCount < 1 || c.Lesson.WordCount > 20 {
		return fmt.Errorf("lesson.word_count must be between 1 and 20, got %d", c.Lesson.WordCount)
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret must not be empty")
	}
	return nil
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lingocalm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "lingocalm")
}

// DataDir returns the directory for the session token and audio cache.
func DataDir() string {
	dir, err := store.DataDir()
	if err != nil {
		return "."
	}
	return dir
}

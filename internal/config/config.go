// Package config loads rooted configuration from ~/.rooted/config.yaml,
// .env and ROOTED_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DBPath    string          `mapstructure:"db_path"`
	Log       LogConfig       `mapstructure:"log"`
	YouTube   YouTubeConfig   `mapstructure:"youtube"`
	Live      LiveConfig      `mapstructure:"live"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// YouTubeConfig configures the live search provider. An empty APIKey
// disables live fetching.
type YouTubeConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxResults  int           `mapstructure:"max_results"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// LiveConfig configures the live fetch cache and repeat suppression.
type LiveConfig struct {
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	HistorySize int           `mapstructure:"history_size"`
}

// RecommendConfig configures recency exclusion.
type RecommendConfig struct {
	RecentCap     int `mapstructure:"recent_cap"`
	RecentExclude int `mapstructure:"recent_exclude"`
}

// Dir returns the rooted home directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rooted")
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath: filepath.Join(Dir(), "rooted.db"),
		Log:    LogConfig{Level: "warn"},
		YouTube: YouTubeConfig{
			MaxResults:  10,
			Timeout:     8 * time.Second,
			MinInterval: 250 * time.Millisecond,
		},
		Live:      LiveConfig{CacheTTL: 24 * time.Hour, HistorySize: 5},
		Recommend: RecommendConfig{RecentCap: 30, RecentExclude: 15},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", "")
	v.SetDefault("youtube.max_results", d.YouTube.MaxResults)
	v.SetDefault("youtube.timeout", d.YouTube.Timeout)
	v.SetDefault("youtube.min_interval", d.YouTube.MinInterval)
	v.SetDefault("live.cache_ttl", d.Live.CacheTTL)
	v.SetDefault("live.history_size", d.Live.HistorySize)
	v.SetDefault("recommend.recent_cap", d.Recommend.RecentCap)
	v.SetDefault("recommend.recent_exclude", d.Recommend.RecentExclude)
}

// Load reads the YAML file at path if it exists, then applies environment
// overrides such as ROOTED_LOG_LEVEL or ROOTED_YOUTUBE_TIMEOUT. ROOTED_DB
// and YOUTUBE_API_KEY are accepted as shorthands.
func Load(path string) (*Config, error) {
	path = expandPath(path)

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ROOTED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db_path", "ROOTED_DB_PATH", "ROOTED_DB"); err != nil {
		return nil, fmt.Errorf("bind db env: %w", err)
	}
	if err := v.BindEnv("youtube.api_key", "ROOTED_YOUTUBE_API_KEY", "YOUTUBE_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

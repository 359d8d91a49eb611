// Package config loads the storefront client settings from an optional YAML
// file, then applies GLOW_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"glow/internal/domain/model"
)

type Config struct {
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
	User     string        `yaml:"user"`
	LogLevel string        `yaml:"log_level"`

	History   HistoryConfig   `yaml:"history"`
	Favorites FavoritesConfig `yaml:"favorites"`
}

type HistoryConfig struct {
	Dir      string `yaml:"dir"`       // 端末ローカルの保存先
	RedisURL string `yaml:"redis_url"` // 指定があればRedisに保存
}

type FavoritesConfig struct {
	Reconcile string `yaml:"reconcile"` // cron spec（例: "@every 5m"）。空なら無効
}

func Default() Config {
	dir := ".glow"
	if home, err := os.UserHomeDir(); err == nil {
		dir = home + string(os.PathSeparator) + ".glow"
	}
	return Config{
		APIURL:   "http://localhost:8080",
		Timeout:  10 * time.Second,
		User:     model.GuestUser,
		LogLevel: "warn",
		History:  HistoryConfig{Dir: dir},
		Favorites: FavoritesConfig{
			Reconcile: "@every 5m",
		},
	}
}

// Load はpathが空または存在しない場合デフォルト値から始める
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GLOW_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GLOW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GLOW_TIMEOUT must be duration: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("GLOW_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GLOW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GLOW_HISTORY_DIR"); v != "" {
		cfg.History.Dir = v
	}
	if v := os.Getenv("GLOW_HISTORY_REDIS_URL"); v != "" {
		cfg.History.RedisURL = v
	}
	if v, ok := os.LookupEnv("GLOW_FAVORITES_RECONCILE"); ok {
		cfg.Favorites.Reconcile = v
	}
	return nil
}

func (c Config) validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must be an http(s) URL: %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	UI      UIConfig
}

// APIConfig holds remote shop API settings.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// StorageConfig holds local persistence settings.
// Backend selects the slot store: "sqlite", "file" or "redis".
type StorageConfig struct {
	Backend   string
	Path      string
	RedisAddr string `mapstructure:"redis_addr"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol     string `mapstructure:"currency_symbol"`
	ToastSeconds       int    `mapstructure:"toast_seconds"`
	SessionPollSeconds int    `mapstructure:"session_poll_seconds"`
}

// Load reads configuration from file and env. Env var overrides use prefix MINISHOP_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "https://gurpreet-backend.onrender.com")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "minishop", "minishop.db"))
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.toast_seconds", 5)
	v.SetDefault("ui.session_poll_seconds", 2)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MINISHOP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "minishop"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MINISHOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the settings-style flows for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("MINISHOP_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "minishop", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.redis_addr", cfg.Storage.RedisAddr)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)
	v.Set("ui.session_poll_seconds", cfg.UI.SessionPollSeconds)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBase is used when neither API_BASE nor NEXT_PUBLIC_API_BASE is set.
const DefaultAPIBase = "http://localhost:8080/api/v1"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName    string `mapstructure:"app_name"`
	Env        string `mapstructure:"app_env"`
	LogLevel   string `mapstructure:"log_level"`
	ServerPort string `mapstructure:"server_port"`
	SiteFile   string `mapstructure:"site_file"`

	APIBaseOverride       string        `mapstructure:"api_base"`
	PublicAPIBaseOverride string        `mapstructure:"next_public_api_base"`
	APITimeoutSeconds     int64         `mapstructure:"api_timeout_seconds"`
	RevalidateSeconds     int64         `mapstructure:"revalidate_seconds"`
	APIBase               string        `mapstructure:"-"`
	APITimeout            time.Duration `mapstructure:"-"`
	Revalidate            time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "guitar-specs-web")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("server_port", "3000")
	v.SetDefault("site_file", "./configs/site.yaml")
	v.SetDefault("api_base", "")
	v.SetDefault("next_public_api_base", "")
	v.SetDefault("api_timeout_seconds", 0)
	v.SetDefault("revalidate_seconds", 60)
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/fetch-cache.db")
	v.SetDefault("storage_cleanup_interval_seconds", int64((10*time.Minute)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBase = ResolveAPIBase(cfg.APIBaseOverride, cfg.PublicAPIBaseOverride)

	if strings.TrimSpace(cfg.ServerPort) == "" {
		return nil, fmt.Errorf("invalid server_port (must not be empty)")
	}
	if cfg.APITimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid api_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.APITimeout = time.Duration(cfg.APITimeoutSeconds) * time.Second

	if cfg.RevalidateSeconds < 0 {
		return nil, fmt.Errorf("invalid revalidate_seconds (must be zero or positive seconds)")
	}
	cfg.Revalidate = time.Duration(cfg.RevalidateSeconds) * time.Second

	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// ResolveAPIBase picks the first non-empty override, falling back to DefaultAPIBase.
// A trailing slash is dropped so paths can be appended directly.
func ResolveAPIBase(overrides ...string) string {
	for _, candidate := range overrides {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return strings.TrimRight(trimmed, "/")
		}
	}
	return DefaultAPIBase
}

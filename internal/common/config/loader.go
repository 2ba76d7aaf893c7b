package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges the environment-specific overlay,
// applies env-var overrides and defaults, and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "leak-diagnostic"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Gateway.Addr == "" {
		cfg.Gateway.Addr = ":8081"
	}
	if cfg.Gateway.ClusterID == "" {
		cfg.Gateway.ClusterID = "C0"
	}
	if cfg.Scoring.Timeout <= 0 {
		cfg.Scoring.Timeout = 30000
	}
	if cfg.Catalog.CacheTTL <= 0 {
		cfg.Catalog.CacheTTL = 900
	}
	if cfg.Report.PageWidthPx <= 0 {
		cfg.Report.PageWidthPx = 1240
	}
	if cfg.Report.MarginPx <= 0 {
		cfg.Report.MarginPx = 80
	}
	if cfg.Report.BaseFontSize <= 0 {
		cfg.Report.BaseFontSize = 22
	}
	if cfg.Report.JPEGQuality <= 0 {
		cfg.Report.JPEGQuality = 80
	}
	if cfg.Report.SettleDelayMs == 0 {
		cfg.Report.SettleDelayMs = 500
	}
	if cfg.Delivery.Provider == "" {
		cfg.Delivery.Provider = "remote"
	}
	if cfg.Delivery.Timeout <= 0 {
		cfg.Delivery.Timeout = 30000
	}
	if cfg.Delivery.Provider == "remote" && cfg.Delivery.Remote.URL == "" {
		cfg.Delivery.Remote.URL = cfg.Scoring.BaseURL
	}
	if cfg.Delivery.SMTP.Port == 0 {
		cfg.Delivery.SMTP.Port = 587
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// loadEnvFile tries the usual locations so daemons and tests can both find
// a .env.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Report   ReportConfig   `mapstructure:"report"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig configures the assessment API daemon.
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// GatewayConfig configures the relay daemon.
type GatewayConfig struct {
	Addr        string `mapstructure:"addr"`
	UpstreamURL string `mapstructure:"upstream_url"`
	ClusterID   string `mapstructure:"cluster_id"`
}

// ScoringConfig points the fetcher and catalog loader at the relay.
type ScoringConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type CatalogConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ReportConfig tunes the rasterizer and assembler.
type ReportConfig struct {
	PageWidthPx   int     `mapstructure:"page_width_px"`
	MarginPx      int     `mapstructure:"margin_px"`
	BaseFontSize  float64 `mapstructure:"base_font_size"`
	JPEGQuality   int     `mapstructure:"jpeg_quality"`
	SettleDelayMs int     `mapstructure:"settle_delay_ms"`
}

// DeliveryConfig selects and configures the dispatcher provider.
type DeliveryConfig struct {
	Provider string `mapstructure:"provider"` // remote, smtp, ses
	Timeout  int    `mapstructure:"timeout"`  // milliseconds

	Remote struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"remote"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	} `mapstructure:"smtp"`

	SES struct {
		Region string `mapstructure:"region"`
		From   string `mapstructure:"from"`
	} `mapstructure:"ses"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	if c.Scoring.BaseURL == "" {
		return fmt.Errorf("scoring.base_url is required")
	}
	if c.Scoring.Timeout <= 0 {
		return fmt.Errorf("scoring.timeout must be positive")
	}
	if c.Report.PageWidthPx <= 0 {
		return fmt.Errorf("report.page_width_px must be positive")
	}
	if c.Report.JPEGQuality < 1 || c.Report.JPEGQuality > 100 {
		return fmt.Errorf("report.jpeg_quality must be between 1 and 100")
	}
	if c.Report.SettleDelayMs < 0 {
		return fmt.Errorf("report.settle_delay_ms must not be negative")
	}
	switch c.Delivery.Provider {
	case "remote":
		if c.Delivery.Remote.URL == "" {
			return fmt.Errorf("delivery.remote.url is required for the remote provider")
		}
	case "smtp":
		if c.Delivery.SMTP.Host == "" {
			return fmt.Errorf("delivery.smtp.host is required for the smtp provider")
		}
		if c.Delivery.SMTP.From == "" {
			return fmt.Errorf("delivery.smtp.from is required for the smtp provider")
		}
	case "ses":
		if c.Delivery.SES.Region == "" {
			return fmt.Errorf("delivery.ses.region is required for the ses provider")
		}
		if c.Delivery.SES.From == "" {
			return fmt.Errorf("delivery.ses.from is required for the ses provider")
		}
	default:
		return fmt.Errorf("delivery.provider must be one of remote, smtp, ses")
	}
	return nil
}

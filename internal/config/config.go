// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Robots    RobotsConfig    `mapstructure:"robots"`
	Docs      DocsConfig      `mapstructure:"docs"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Pages     []PageConfig    `mapstructure:"pages"`
}

// PageConfig declares a routable page served by the documentation surface.
type PageConfig struct {
	Path        string `mapstructure:"path"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Hidden      bool   `mapstructure:"hidden"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeoutSec  int `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int `mapstructure:"write_timeout_seconds"`
	ShutdownSec     int `mapstructure:"shutdown_seconds"`
}

// AppConfig describes the application whose documentation is served.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	BaseURL     string `mapstructure:"base_url"`
}

// RobotsConfig governs robots.txt generation.
type RobotsConfig struct {
	BlockAITraining  bool     `mapstructure:"block_ai_training"`
	AllowAISearch    bool     `mapstructure:"allow_ai_search"`
	AllowTraditional bool     `mapstructure:"allow_traditional"`
	CrawlDelay       int      `mapstructure:"crawl_delay"`
	CustomRules      []string `mapstructure:"custom_rules"`
	DisallowedPaths  []string `mapstructure:"disallowed_paths"`
}

// DocsConfig bounds documentation extraction. IncludeHidden documents hidden
// component subtrees instead of dropping them.
type DocsConfig struct {
	MaxDepth      int  `mapstructure:"max_depth"`
	IncludeHidden bool `mapstructure:"include_hidden"`
}

// AnalyticsConfig controls visit tracking and persistence.
type AnalyticsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	VisitLogPath string `mapstructure:"visit_log_path"`
	MaxVisits    int    `mapstructure:"max_visits"`
	BufferSize   int    `mapstructure:"buffer_size"`
	FlushMs      int    `mapstructure:"flush_ms"`
}

// RateLimitConfig throttles inbound requests.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.shutdown_seconds", 10)
	v.SetDefault("app.name", "Application")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("robots.block_ai_training", true)
	v.SetDefault("robots.allow_ai_search", true)
	v.SetDefault("robots.allow_traditional", true)
	v.SetDefault("robots.crawl_delay", 0)
	v.SetDefault("docs.max_depth", 20)
	v.SetDefault("docs.include_hidden", false)
	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.visit_log_path", "visits.json")
	v.SetDefault("analytics.max_visits", 1000)
	v.SetDefault("analytics.buffer_size", 1024)
	v.SetDefault("analytics.flush_ms", 250)
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.App.BaseURL == "" {
		return fmt.Errorf("app.base_url must be set")
	}
	if c.Docs.MaxDepth <= 0 {
		return fmt.Errorf("docs.max_depth must be > 0")
	}
	if c.Analytics.Enabled {
		if c.Analytics.VisitLogPath == "" {
			return fmt.Errorf("analytics.visit_log_path must be set when analytics is enabled")
		}
		if c.Analytics.MaxVisits <= 0 {
			return fmt.Errorf("analytics.max_visits must be > 0")
		}
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("ratelimit.rps must be > 0 when rate limiting is enabled")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("ratelimit.burst must be > 0 when rate limiting is enabled")
		}
	}
	if c.Robots.CrawlDelay < 0 {
		return fmt.Errorf("robots.crawl_delay must be >= 0")
	}
	for i, p := range c.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			return fmt.Errorf("pages[%d].path must begin with /", i)
		}
	}
	return nil
}

// ShutdownTimeout converts the configured shutdown budget into a duration.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownSec) * time.Second
}

// FlushInterval converts the analytics flush budget into a duration.
func (c AnalyticsConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushMs) * time.Millisecond
}

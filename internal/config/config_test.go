package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  shutdown_seconds: 5
app:
  name: Sales Dashboard
  description: Interactive sales analytics
  base_url: https://dash.example.com
robots:
  block_ai_training: false
  allow_ai_search: true
  crawl_delay: 2
  disallowed_paths: ["/admin", "/internal"]
  custom_rules: ["User-agent: BadBot", "Disallow: /"]
docs:
  max_depth: 10
  include_hidden: true
analytics:
  enabled: true
  visit_log_path: /var/lib/siteatlas/visits.json
  max_visits: 500
ratelimit:
  enabled: true
  rps: 25
  burst: 50
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.App.Name != "Sales Dashboard" || cfg.App.BaseURL != "https://dash.example.com" {
		t.Fatalf("expected app overrides to apply: %+v", cfg.App)
	}
	if cfg.Robots.BlockAITraining || cfg.Robots.CrawlDelay != 2 {
		t.Fatalf("expected robots overrides to apply: %+v", cfg.Robots)
	}
	if len(cfg.Robots.DisallowedPaths) != 2 || cfg.Robots.DisallowedPaths[0] != "/admin" {
		t.Fatalf("expected disallowed paths to be loaded: %+v", cfg.Robots.DisallowedPaths)
	}
	if len(cfg.Robots.CustomRules) != 2 {
		t.Fatalf("expected custom rules to be loaded: %+v", cfg.Robots.CustomRules)
	}
	if cfg.Docs.MaxDepth != 10 || !cfg.Docs.IncludeHidden {
		t.Fatalf("expected docs overrides to apply: %+v", cfg.Docs)
	}
	if cfg.Analytics.MaxVisits != 500 || cfg.Analytics.VisitLogPath != "/var/lib/siteatlas/visits.json" {
		t.Fatalf("expected analytics overrides to apply: %+v", cfg.Analytics)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RPS != 25 {
		t.Fatalf("expected rate limit overrides to apply: %+v", cfg.RateLimit)
	}
	if cfg.Logging.Development {
		t.Fatal("expected development logging to be disabled")
	}
	if got := cfg.ShutdownTimeout(); got != 5*time.Second {
		t.Fatalf("expected shutdown timeout 5s, got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Robots.BlockAITraining || !cfg.Robots.AllowAISearch || !cfg.Robots.AllowTraditional {
		t.Fatalf("expected default robots policy: %+v", cfg.Robots)
	}
	if cfg.Analytics.MaxVisits != 1000 {
		t.Fatalf("expected default visit cap 1000, got %d", cfg.Analytics.MaxVisits)
	}
	if got := cfg.Analytics.FlushInterval(); got != 250*time.Millisecond {
		t.Fatalf("expected default flush interval 250ms, got %v", got)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080},
		App:    AppConfig{BaseURL: "http://localhost:8080"},
		Docs:   DocsConfig{MaxDepth: 20},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "missing base url",
			cfg: func() Config {
				c := base
				c.App.BaseURL = ""
				return c
			}(),
			want: "app.base_url",
		},
		{
			name: "invalid max depth",
			cfg: func() Config {
				c := base
				c.Docs.MaxDepth = 0
				return c
			}(),
			want: "docs.max_depth",
		},
		{
			name: "analytics missing log path",
			cfg: func() Config {
				c := base
				c.Analytics.Enabled = true
				c.Analytics.MaxVisits = 100
				return c
			}(),
			want: "analytics.visit_log_path",
		},
		{
			name: "analytics invalid cap",
			cfg: func() Config {
				c := base
				c.Analytics.Enabled = true
				c.Analytics.VisitLogPath = "visits.json"
				return c
			}(),
			want: "analytics.max_visits",
		},
		{
			name: "rate limit missing rps",
			cfg: func() Config {
				c := base
				c.RateLimit.Enabled = true
				c.RateLimit.Burst = 10
				return c
			}(),
			want: "ratelimit.rps",
		},
		{
			name: "negative crawl delay",
			cfg: func() Config {
				c := base
				c.Robots.CrawlDelay = -1
				return c
			}(),
			want: "robots.crawl_delay",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

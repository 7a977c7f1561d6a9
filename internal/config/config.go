package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Assistant AssistantConfig `yaml:"assistant"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DatabaseConfig contains PostgreSQL connection settings.
// URL, when set, wins over the individual fields (hosted Postgres hands out URLs).
type DatabaseConfig struct {
	URL      string `yaml:"url" env:"DATABASE_URL"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"LOG_FORMAT"` // "json" or "text"
}

// AssistantConfig contains the booking assistant settings
type AssistantConfig struct {
	Provider           string `yaml:"provider" env:"ASSISTANT_PROVIDER"` // "gemini" or "openai"
	Model              string `yaml:"model" env:"ASSISTANT_MODEL"`
	GeminiAPIKey       string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	OpenAIAPIKey       string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	GeminiBaseURL      string `yaml:"gemini_base_url" env:"GEMINI_BASE_URL"`
	OpenAIBaseURL      string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenRouterReferrer string `yaml:"openrouter_referrer" env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `yaml:"openrouter_title" env:"OPENROUTER_TITLE"`
	ShopName           string `yaml:"shop_name" env:"SHOP_NAME"`
	PhoneRegion        string `yaml:"phone_region" env:"PHONE_REGION"`
	Timezone           string `yaml:"timezone" env:"SHOP_TIMEZONE"`
	RequestsPerMinute  int    `yaml:"requests_per_minute" env:"ASSISTANT_RPM"`
}

// SchedulerConfig contains cron schedule settings (seconds precision)
type SchedulerConfig struct {
	ReconcileRemaining string `yaml:"reconcile_remaining" env:"SCHEDULE_RECONCILE_REMAINING"`
	OverdueRentals     string `yaml:"overdue_rentals" env:"SCHEDULE_OVERDUE_RENTALS"`
	LedgerSummary      string `yaml:"ledger_summary" env:"SCHEDULE_LEDGER_SUMMARY"`
}

// MetricsConfig controls the Prometheus listener
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Address string `yaml:"address" env:"METRICS_ADDR"`
}

// Load reads configuration from a YAML file, then a .env file if present,
// then the process environment.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.Port < 0 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	c.Assistant.Provider = strings.ToLower(c.Assistant.Provider)
	if c.Assistant.Provider == "" {
		c.Assistant.Provider = "gemini"
	}
	if c.Assistant.Provider != "gemini" && c.Assistant.Provider != "openai" {
		return fmt.Errorf("unknown assistant provider: %s", c.Assistant.Provider)
	}
	if c.Assistant.ShopName == "" {
		c.Assistant.ShopName = "BOMNE"
	}
	if c.Assistant.PhoneRegion == "" {
		c.Assistant.PhoneRegion = "VN"
	}
	if c.Assistant.Timezone == "" {
		c.Assistant.Timezone = "Asia/Ho_Chi_Minh"
	}
	if _, err := time.LoadLocation(c.Assistant.Timezone); err != nil {
		return fmt.Errorf("invalid shop timezone %q: %w", c.Assistant.Timezone, err)
	}
	if c.Assistant.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute must not be negative")
	}

	if c.Scheduler.ReconcileRemaining == "" {
		c.Scheduler.ReconcileRemaining = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.OverdueRentals == "" {
		c.Scheduler.OverdueRentals = "0 0 9 * * *" // 9 AM shop time
	}
	if c.Scheduler.LedgerSummary == "" {
		c.Scheduler.LedgerSummary = "0 0 22 * * *" // 10 PM shop time
	}

	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Database,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// APIKey returns the key of the configured provider.
func (a AssistantConfig) APIKey() string {
	if a.Provider == "openai" {
		return a.OpenAIAPIKey
	}
	return a.GeminiAPIKey
}

// BaseURL returns the endpoint override of the configured provider, if any.
func (a AssistantConfig) BaseURL() string {
	if a.Provider == "openai" {
		return a.OpenAIBaseURL
	}
	return a.GeminiBaseURL
}

// Location returns the shop's time zone. Validate has already checked it loads.
func (a AssistantConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

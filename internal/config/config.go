package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel     string `mapstructure:"LOG_LEVEL"`
	ErrorLogPath string `mapstructure:"ERROR_LOG_PATH"`

	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Supabase realtime broadcast.
	SupabaseURL      string `mapstructure:"SUPABASE_URL"`
	SupabaseKey      string `mapstructure:"SUPABASE_KEY"`
	BroadcastChannel string `mapstructure:"BROADCAST_CHANNEL"`

	// Redis broadcast, preferred over Supabase when set.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RetellAPIKey  string `mapstructure:"RETELL_API_KEY"`
	RetellAgentID string `mapstructure:"RETELL_AGENT_ID"`
	RetellBaseURL string `mapstructure:"RETELL_BASE_URL"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
	// honour X-Forwarded-For; only set behind a proxy that overwrites it
	TrustProxy bool `mapstructure:"TRUST_PROXY"`
}

var defaults = map[string]any{
	"PORT":              "3000",
	"ENV":               "development",
	"LOG_LEVEL":         "info",
	"ERROR_LOG_PATH":    "error.log",
	"DATABASE_URL":      "",
	"MIGRATIONS_PATH":   "db/migrations/001_init.sql",
	"SUPABASE_URL":      "",
	"SUPABASE_KEY":      "",
	"BROADCAST_CHANNEL": "appointments",
	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"RETELL_API_KEY":    "",
	"RETELL_AGENT_ID":   "",
	"RETELL_BASE_URL":   "https://api.retellai.com",
	"RATE_LIMIT_RPS":    10,
	"RATE_LIMIT_BURST":  20,
	"TRUST_PROXY":       false,
}

// Load reads .env (if present), then config.yaml from . or ./config (if
// present), then the environment. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) SupabaseEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// SupabaseWithoutDatabase reports a deployment that configured Supabase
// but not the Postgres connection string the store needs.
func (c *Config) SupabaseWithoutDatabase() bool {
	return c.SupabaseEnabled() && !c.DatabaseEnabled()
}

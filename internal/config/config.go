package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	GRPCPort             string   `mapstructure:"GRPC_PORT"`
	Env                  string   `mapstructure:"ENV"`
	DatabaseURL          string   `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL             string   `mapstructure:"REDIS_URL"`
	ResultStream         string   `mapstructure:"RESULT_STREAM"`
	DownstreamStream     string   `mapstructure:"DOWNSTREAM_STREAM"`
	ConsumerGroup        string   `mapstructure:"CONSUMER_GROUP"`
	ConsumerName         string   `mapstructure:"CONSUMER_NAME"`
	SweepIntervalSeconds int      `mapstructure:"SWEEP_INTERVAL_SECONDS"`
	CatalogFile          string   `mapstructure:"CATALOG_FILE"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS         float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst       int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("GRPC_PORT", "9090")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RESULT_STREAM", "lis:results")
	v.SetDefault("DOWNSTREAM_STREAM", "lis:results:accepted")
	v.SetDefault("CONSUMER_GROUP", "result-backup")
	v.SetDefault("CONSUMER_NAME", "consumer-1")
	v.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("GRPC_PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("RESULT_STREAM")
	v.BindEnv("DOWNSTREAM_STREAM")
	v.BindEnv("CONSUMER_GROUP")
	v.BindEnv("CONSUMER_NAME")
	v.BindEnv("SWEEP_INTERVAL_SECONDS")
	v.BindEnv("CATALOG_FILE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SweepInterval returns the relay sweep interval as a duration, never less
// than one second.
func (c *Config) SweepInterval() time.Duration {
	if c.SweepIntervalSeconds < 1 {
		return time.Minute
	}
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}
	if c.ResultStream == c.DownstreamStream {
		return fmt.Errorf("RESULT_STREAM and DOWNSTREAM_STREAM must differ, both are %q", c.ResultStream)
	}
	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}
	return nil
}

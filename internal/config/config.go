package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the service. Values come from
// config.yaml when present, overridden by STOCKLOC_* environment variables.
type Config struct {
	Addr          string        `mapstructure:"addr"`
	DatabaseURL   string        `mapstructure:"database_url"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RateLimitRPS  float64       `mapstructure:"rate_limit_rps"`
	RateBurst     int           `mapstructure:"rate_burst"`
	StrikeLimit   int           `mapstructure:"strike_limit"`
	StrikeWindow  time.Duration `mapstructure:"strike_window"`
	BanDuration   time.Duration `mapstructure:"ban_duration"`
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_burst", 10)
	v.SetDefault("strike_limit", 5)
	v.SetDefault("strike_window", 10*time.Minute)
	v.SetDefault("ban_duration", time.Hour)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("STOCKLOC")
	v.AutomaticEnv()
	// Conventional name used by most deployments.
	_ = v.BindEnv("database_url", "STOCKLOC_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "STOCKLOC_REDIS_ADDR", "REDIS_ADDR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// WasteConfig holds all configuration for the waste module.
type WasteConfig struct {
	MongoDBURI   string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"wastetrack"`

	// BillingDueDay is the day of the following month a bill falls due.
	BillingDueDay int `env:"BILLING_DUE_DAY" envDefault:"15"`

	Redis RedisConfig
}

// RedisConfig holds the connection settings for the active-configuration
// cache. Redis is optional: with RedisEnabled false every read goes to
// MongoDB.
type RedisConfig struct {
	RedisEnabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"5m"`
}

// Addr returns the host:port pair for the Redis client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// LoadConfig loads configuration from environment variables and applies
// defaults.
func LoadConfig() (*WasteConfig, error) {
	cfg := &WasteConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load waste configuration from environment: " + err.Error())
	}
	if err := env.Parse(&cfg.Redis); err != nil {
		return nil, errors.New("failed to load redis configuration from environment: " + err.Error())
	}
	if cfg.BillingDueDay < 1 || cfg.BillingDueDay > 28 {
		return nil, fmt.Errorf("BILLING_DUE_DAY must be between 1 and 28, got %d", cfg.BillingDueDay)
	}
	return cfg, nil
}

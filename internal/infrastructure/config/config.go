package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// JWTConfig carries the token-issuance settings. All values are required at
// startup; a missing or short key is a startup-fatal condition, never a
// per-request error.
type JWTConfig struct {
	Key          string `env:"JWT_KEY,           required"`
	Issuer       string `env:"JWT_ISSUER,        required"`
	Audience     string `env:"JWT_AUDIENCE,      required"`
	DurationDays int    `env:"JWT_DURATION_DAYS, default=7"`
	DefaultRole  string `env:"DEFAULT_ROLE,      default=User"`
}

// Duration returns the token lifetime as a time.Duration.
func (c JWTConfig) Duration() time.Duration {
	return time.Duration(c.DurationDays) * 24 * time.Hour
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bookstore"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

package config

import "time"

// Store backend selectors.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Store             string        `mapstructure:"store" yaml:"store"`
	RedisAddr         string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB           int           `mapstructure:"redis_db" yaml:"redis_db"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	MaxContentBytes   int           `mapstructure:"max_content_bytes" yaml:"max_content_bytes"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3001",
		Store:             StoreRedis,
		RedisAddr:         "localhost:6379",
		RedisDB:           0,
		LogLevel:          "info",
		MaxContentBytes:   64 * 1024,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

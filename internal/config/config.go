// Package config loads the directory configuration from defaults, an
// optional file, DIRECTORY_* environment variables and command flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/logging"
	"github.com/Sternrassler/employee-directory/pkg/session"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DIRECTORY_ENDPOINT.
const EnvPrefix = "DIRECTORY"

// Keys, shared by flags, env variables and the config file.
const (
	KeyEndpoint   = "endpoint"
	KeyUserAgent  = "user-agent"
	KeyLogLevel   = "log-level"
	KeyLogPretty  = "log-pretty"
	KeyAddr       = "addr"
	KeyRedisAddr  = "redis-addr"
	KeySessionTTL = "session-ttl"
)

// DefaultUserAgent identifies the fetcher.
const DefaultUserAgent = "employee-directory/0.1.0"

// Config is the application configuration.
type Config struct {
	Endpoint   string        `mapstructure:"endpoint" validate:"required,url"`
	UserAgent  string        `mapstructure:"user-agent" validate:"required"`
	LogLevel   string        `mapstructure:"log-level" validate:"required"`
	LogPretty  bool          `mapstructure:"log-pretty"`
	Addr       string        `mapstructure:"addr" validate:"required"`
	RedisAddr  string        `mapstructure:"redis-addr"`
	SessionTTL time.Duration `mapstructure:"session-ttl" validate:"gte=0"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, client.DefaultEndpoint)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyLogLevel, string(logging.LevelInfo))
	v.SetDefault(KeyLogPretty, false)
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeySessionTTL, session.DefaultTTL)
}

// Load reads configuration into a Config. path may be empty, in which case
// only defaults, environment and bound flags are used.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints, including the derived logger config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if err := c.Logging().Validate(); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// Client returns the directory client configuration.
func (c *Config) Client() client.Config {
	return client.Config{
		Endpoint:  c.Endpoint,
		UserAgent: c.UserAgent,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.LogLevel)
	cfg.Pretty = c.LogPretty
	return cfg
}

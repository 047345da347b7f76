package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SessionSecret string `mapstructure:"session_secret"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Membership trial code
	TrialCode string `mapstructure:"trial_code"`

	// Session store settings
	SessionStore  string `mapstructure:"session_store"` // "sqlite" or "redis"
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// Storage
	DBPath string `mapstructure:"db_path"`

	// Static paths
	ConfigPath string
}

const (
	DefaultConfigPath   = "/etc/clubhouse/config.yml"
	DefaultDBPath       = "/var/lib/clubhouse/db.sqlite3"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 3000
	DefaultTrialCode    = "catsarecool"
	DefaultSessionStore = "sqlite"
	DefaultRedisAddr    = "localhost:6379"
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("api_host", DefaultAPIHost)
	viper.SetDefault("api_port", DefaultAPIPort)
	viper.SetDefault("trial_code", DefaultTrialCode)
	viper.SetDefault("session_store", DefaultSessionStore)
	viper.SetDefault("redis_addr", DefaultRedisAddr)
	viper.SetDefault("db_path", DefaultDBPath)

	// Allow environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CLUBHOUSE")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}

	if c.SessionStore != "sqlite" && c.SessionStore != "redis" {
		return fmt.Errorf("session_store must be 'sqlite' or 'redis'")
	}

	if c.TrialCode == "" {
		return fmt.Errorf("trial_code must not be empty")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("CLUBHOUSE_DEV_MODE") == "1"
}

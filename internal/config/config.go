package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	Path         string `mapstructure:"path"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// DataSource returns the driver-appropriate DSN. For sqlite3 that is the
// database file path; for mysql the configured DSN string.
func (c *DBConfig) DataSource() string {
	if c.Driver == "sqlite3" {
		return c.Path
	}
	return c.DSN
}

type LLMConfig struct {
	Generator ProviderConfig `mapstructure:"generator"`
}

type ProviderConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is not an error; the defaults give a working local
// setup (sqlite orders.db plus the mock generator).
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.frodo/")
	v.AddConfigPath("/etc/frodo/")

	// Enable environment variable override with FRODO_ prefix
	v.SetEnvPrefix("FRODO")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.path", "orders.db")
	v.SetDefault("db.maxOpenConns", 1)
	v.SetDefault("llm.generator.provider", "mock")
	v.SetDefault("llm.generator.model", "gpt-4o")
	v.SetDefault("llm.generator.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

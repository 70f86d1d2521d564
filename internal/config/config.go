package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from the environment, with
// an optional .env file for local development.
type Config struct {
	ServerPort   string        `mapstructure:"SERVER_PORT"`
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTExpiry    time.Duration `mapstructure:"JWT_EXPIRY"`
	ClientOrigin string        `mapstructure:"CLIENT_ORIGIN"`
	AWSRegion    string        `mapstructure:"AWS_REGION"`
	EmailFrom    string        `mapstructure:"EMAIL_FROM"`
}

// LoadConfig reads configuration from path/.env (if present) and the process
// environment. Environment variables win over file values.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so bind the ones that
	// have no default.
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("EMAIL_FROM")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRY", "24h")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("AWS_REGION", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine in containerized deployments where
		// everything arrives through the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return cfg, nil
}

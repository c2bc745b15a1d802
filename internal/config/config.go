package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the admin client.
type Config struct {
	API     APIConfig
	State   StateConfig
	Session SessionConfig
	Logger  LoggerConfig
}

// APIConfig describes how to reach the bot backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StateConfig locates the durable client state file.
type StateConfig struct {
	Path string
}

// SessionConfig carries the inactivity policy. The token's own expiry claim
// remains the authoritative check; this is a coarse client-side policy.
type SessionConfig struct {
	InactivityLimit time.Duration
	SweepInterval   time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// Load reads config.yml (if present) and applies environment overrides.
// A missing config file is not an error; defaults cover every setting.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".mrcog-admin"))
	}
	viper.AutomaticEnv()

	viper.SetDefault("api.base_url", "http://localhost:3010/api")
	viper.SetDefault("api.timeout", "15s")
	viper.SetDefault("state.path", defaultStatePath())
	viper.SetDefault("session.inactivity_limit", "30m")
	viper.SetDefault("session.sweep_interval", "1m")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: viper.GetString("api.base_url"),
			Timeout: viper.GetDuration("api.timeout"),
		},
		State: StateConfig{
			Path: viper.GetString("state.path"),
		},
		Session: SessionConfig{
			InactivityLimit: viper.GetDuration("session.inactivity_limit"),
			SweepInterval:   viper.GetDuration("session.sweep_interval"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if statePath := os.Getenv("STATE_PATH"); statePath != "" {
		cfg.State.Path = statePath
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Logger.Env = env
	}

	return cfg, nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.db"
	}
	return filepath.Join(home, ".mrcog-admin", "state.db")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30
)

type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`

	// Home is the client state directory, resolved outside the YAML file.
	Home string `yaml:"-"`
}

// Load resolves configuration in ascending precedence: defaults, then
// $ENDURE_HOME/config.yaml, then environment variables. A .env file in the
// working directory is folded into the environment first.
func Load() (Config, error) {
	_ = godotenv.Load()

	home := os.Getenv("ENDURE_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		home = filepath.Join(userHome, ".endure")
	}

	cfg := Config{
		BaseURL:        defaultBaseURL,
		TimeoutSeconds: defaultTimeout,
		LogLevel:       "info",
		Home:           home,
	}

	payload, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err == nil {
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config.yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	cfg.Home = home

	if v := os.Getenv("ENDURE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ENDURE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeout
	}
	return cfg, nil
}

func (c Config) TokenPath() string {
	return filepath.Join(c.Home, "token")
}

func (c Config) LogPath() string {
	return filepath.Join(c.Home, "endure.log")
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Package config loads application settings from an optional YAML file
// and environment variables. Environment variables win over the file,
// the file wins over the defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

type Config struct {
	Login   LoginConfig `yaml:"login"`
	LogMode string      `yaml:"log_mode"`
	// Seed fills empty lookup collections with default values on start.
	Seed bool `yaml:"seed"`
}

// LoginConfig holds the two strings the login gate compares against.
type LoginConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func Default() Config {
	return Config{
		Login: LoginConfig{
			Username: DefaultUsername,
			Password: DefaultPassword,
		},
		LogMode: "dev",
		Seed:    true,
	}
}

// Load reads FACTORY_CONFIG (if set) and then applies FACTORY_* overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("FACTORY_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, os.Getenv)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("FACTORY_LOGIN_USERNAME"); v != "" {
		cfg.Login.Username = v
	}
	if v := getenv("FACTORY_LOGIN_PASSWORD"); v != "" {
		cfg.Login.Password = v
	}
	if v := getenv("FACTORY_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := getenv("FACTORY_SEED"); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			cfg.Seed = b
		}
	}
}

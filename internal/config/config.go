package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"

	"ledger/internal/log"
)

const (
	DefaultDBPath   = "./ledger.db"
	DefaultTimezone = "Local"
	DefaultCurrency = "EUR"
	DefaultPort     = "8081"
	DefaultLogLevel = "info"
)

type Config struct {
	// Store location. Always passed explicitly to the repository.
	DBPath string `yaml:"db_path"`

	// Time zone creation timestamps and "current month" are computed in.
	Timezone string `yaml:"timezone"`

	// ISO 4217 code used to display amounts and parse major-unit input.
	Currency string `yaml:"currency"`

	// HTTP API
	Port string `yaml:"port"`

	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		DBPath:   DefaultDBPath,
		Timezone: DefaultTimezone,
		Currency: DefaultCurrency,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}
}

// Load builds the configuration from defaults overridden by environment variables.
func Load() *Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML configuration file, then applies environment
// overrides on top. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DBPath = getEnv("LEDGER_DB_PATH", c.DBPath)
	c.Timezone = getEnv("LEDGER_TIMEZONE", c.Timezone)
	c.Currency = strings.ToUpper(getEnv("LEDGER_CURRENCY", c.Currency))
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Location resolves Timezone; "Local" and "" mean the process time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				errors = append(errors, fmt.Sprintf("database directory '%s' is not a directory", dir))
			}
		}
	}

	if _, err := c.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if money.GetCurrency(c.Currency) == nil {
		errors = append(errors, fmt.Sprintf("unknown currency '%s'", c.Currency))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

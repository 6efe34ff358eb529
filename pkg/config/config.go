// Package config provides configuration loading for the natctl services.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InterpreterConfig carries the data-driven pieces of interpretation: the
// sequence joiners (localized equivalents are added here, never hard-coded
// per language) and the default values the heuristic fallback fills in when
// a command is recognized only by keyword presence.
type InterpreterConfig struct {
	Separators         []string `yaml:"separators"`
	DefaultFilename    string   `yaml:"default_filename"`
	DefaultAppName     string   `yaml:"default_app_name"`
	DefaultWaitSeconds string   `yaml:"default_wait_seconds"`
}

// APIConfig configures the HTTP front-end.
type APIConfig struct {
	Port int `yaml:"port"`
}

// EventBusConfig selects the dispatch bus backing ("gochannel" or "kafka").
type EventBusConfig struct {
	Provider string `yaml:"provider"`
}

// Config is the full natctl.yaml document.
type Config struct {
	LogLevel    string            `yaml:"log_level"`
	DatabaseURL string            `yaml:"database_url"`
	StoreURL    string            `yaml:"store_url"`
	API         APIConfig         `yaml:"api"`
	EventBus    EventBusConfig    `yaml:"event_bus"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
}

// Defaults returns the built-in configuration. The interpreter defaults keep
// the historical literals ("new_file.txt", "notepad") the automation scripts
// always used.
func Defaults() Config {
	return Config{
		LogLevel:    "info",
		DatabaseURL: "file://./data",
		StoreURL:    "memory://",
		API:         APIConfig{Port: 9090},
		EventBus:    EventBusConfig{Provider: "gochannel"},
		Interpreter: InterpreterConfig{
			Separators:         []string{",", "and", "then"},
			DefaultFilename:    "new_file.txt",
			DefaultAppName:     "notepad",
			DefaultWaitSeconds: "1",
		},
	}
}

// Load reads configuration from a YAML file, filling omitted fields from
// Defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Defaults()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	config.fillDefaults()

	return config, nil
}

// LoadOrDefault attempts to load configuration from a file, falling back to
// Defaults when the file doesn't exist or doesn't parse.
func LoadOrDefault(path string) Config {
	config, err := Load(path)
	if err != nil {
		return Defaults()
	}

	return config
}

func (c *Config) fillDefaults() {
	defaults := Defaults()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.DatabaseURL == "" {
		c.DatabaseURL = defaults.DatabaseURL
	}

	if c.StoreURL == "" {
		c.StoreURL = defaults.StoreURL
	}

	if c.API.Port == 0 {
		c.API.Port = defaults.API.Port
	}

	if c.EventBus.Provider == "" {
		c.EventBus.Provider = defaults.EventBus.Provider
	}

	if len(c.Interpreter.Separators) == 0 {
		c.Interpreter.Separators = defaults.Interpreter.Separators
	}

	if c.Interpreter.DefaultFilename == "" {
		c.Interpreter.DefaultFilename = defaults.Interpreter.DefaultFilename
	}

	if c.Interpreter.DefaultAppName == "" {
		c.Interpreter.DefaultAppName = defaults.Interpreter.DefaultAppName
	}

	if c.Interpreter.DefaultWaitSeconds == "" {
		c.Interpreter.DefaultWaitSeconds = defaults.Interpreter.DefaultWaitSeconds
	}
}

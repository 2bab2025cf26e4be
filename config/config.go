// Package config loads the service configuration from config.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort           = 8501
	DefaultTimeout        = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultModelDir       = "artifacts"
	DefaultScalerFile     = "scaler.json"
	DefaultClassifierFile = "model.json"
	DefaultTimezone       = "UTC"
)

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Model struct {
		Dir            string `yaml:"dir"`
		ScalerFile     string `yaml:"scaler_file"`
		ClassifierFile string `yaml:"classifier_file"`
	} `yaml:"model"`
	Features struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"features"`
}

// Load reads path, applies .env and environment overrides, fills defaults
// and validates the result. A missing path yields the defaults.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var config Config
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FRAUDCHECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FRAUDCHECK_PORT: %w", err)
		}
		c.Http.Port = port
	}
	if v := os.Getenv("FRAUDCHECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FRAUDCHECK_MODEL_DIR"); v != "" {
		c.Model.Dir = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Http.Port == 0 {
		c.Http.Port = DefaultPort
	}
	if c.Http.Timeout == 0 {
		c.Http.Timeout = DefaultTimeout
	}
	if len(c.Http.AllowedOrigins) == 0 {
		c.Http.AllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Model.Dir == "" {
		c.Model.Dir = DefaultModelDir
	}
	if c.Model.ScalerFile == "" {
		c.Model.ScalerFile = DefaultScalerFile
	}
	if c.Model.ClassifierFile == "" {
		c.Model.ClassifierFile = DefaultClassifierFile
	}
	if c.Features.Timezone == "" {
		c.Features.Timezone = DefaultTimezone
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Http.Port < 1 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout < 0 {
		return errors.New("http.timeout must not be negative")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("features.timezone: %w", err)
	}
	return nil
}

// Location resolves features.timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Features.Timezone)
}

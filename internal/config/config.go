package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/ppc-intelligence/internal/pipeline"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Storage  StorageConfig   `yaml:"storage"`
	Export   ExportConfig    `yaml:"export"`
	Pipeline pipeline.Config `yaml:"pipeline"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host with a container/environment override.
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StorageConfig selects the account snapshot store backend.
type StorageConfig struct {
	Type          string `yaml:"type"` // "memory" or "redis"
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

// ExportConfig holds bulk file generation settings.
type ExportConfig struct {
	// DailyBudget is the constant daily budget stamped on isolation
	// campaign rows.
	DailyBudget float64  `yaml:"daily_budget"`
	S3          S3Config `yaml:"s3"`
}

// S3Config holds the optional S3 delivery target for generated bulk files.
type S3Config struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
	Prefix  string `yaml:"prefix"`
}

// Load reads and parses the configuration file. The pipeline section
// starts from the canonical defaults so a partial file only overrides what
// it names.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080, Host: "localhost"},
		Storage:  StorageConfig{Type: "memory"},
		Export:   ExportConfig{DailyBudget: 10, S3: S3Config{Region: "us-west-2", Prefix: "exports"}},
		Pipeline: pipeline.DefaultConfig(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// A .env file (if present) is loaded first so secrets can live in .env
// locally and in real env vars on deployed hosts.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.Type = "redis"
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := os.Getenv("EXPORT_S3_BUCKET"); v != "" {
		cfg.Export.S3.Enabled = true
		cfg.Export.S3.Bucket = v
	}
	if v := os.Getenv("EXPORT_S3_REGION"); v != "" {
		cfg.Export.S3.Region = v
	}

	return cfg, nil
}

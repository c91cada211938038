package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"bess-dashboard/internal/log"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// DataDir holds the six market datasets (feather or csv).
	DataDir  string       `yaml:"data_dir"`
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	Charts   ChartConfig  `yaml:"charts"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Env is "development" or "production"; production puts gin in release mode.
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Gzip toggles response compression. Nil means enabled.
	Gzip *bool `yaml:"gzip"`
}

// ChartConfig is the figure size in inches.
type ChartConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

func Default() Config {
	return Config{
		DataDir:  "./data",
		LogLevel: "info",
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"*"},
		},
		Charts: ChartConfig{WidthIn: 10, HeightIn: 3},
	}
}

// GzipEnabled reports whether responses are compressed.
func (s ServerConfig) GzipEnabled() bool {
	return s.Gzip == nil || *s.Gzip
}

func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty), then environment overrides. The result
// is validated.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var file Config
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		c = Merge(c, file)
	}
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	c = Merge(c, env)
	return &c, nil
}

// LoadDotEnv loads a .env file into the process environment if one exists.
// Variables already set are not overridden.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
}

// FromEnv reads the environment overrides. Unset variables leave fields zero.
func FromEnv() (Config, error) {
	var c Config
	c.DataDir = os.Getenv("DATA_DIR")
	c.LogLevel = os.Getenv("LOG_LEVEL")
	c.Server.Port = os.Getenv("API_PORT")
	c.Server.Env = os.Getenv("API_ENV")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("API_GZIP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("API_GZIP: %w", err)
		}
		c.Server.Gzip = &b
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port must be a TCP port, got %q", c.Server.Port)
	}
	switch c.Server.Env {
	case "development", "production", "test":
	default:
		return fmt.Errorf("server.env must be development, production or test, got %q", c.Server.Env)
	}
	if c.Charts.WidthIn <= 0 || c.Charts.HeightIn <= 0 {
		return errors.New("charts.width_in and charts.height_in must be positive")
	}
	return nil
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override Config) Config {
	out := base
	if override.DataDir != "" {
		out.DataDir = override.DataDir
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.Server.Port != "" {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if len(override.Server.AllowedOrigins) > 0 {
		out.Server.AllowedOrigins = override.Server.AllowedOrigins
	}
	if override.Server.Gzip != nil {
		out.Server.Gzip = override.Server.Gzip
	}
	if override.Charts.WidthIn != 0 {
		out.Charts.WidthIn = override.Charts.WidthIn
	}
	if override.Charts.HeightIn != 0 {
		out.Charts.HeightIn = override.Charts.HeightIn
	}
	return out
}

// Package config loads lessoncraft configuration from defaults, an optional
// YAML file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessoncraft/internal/llm"
)

// Config is the top-level configuration.
type Config struct {
	LLM      llm.Config  `yaml:"llm"`
	Store    StoreConfig `yaml:"store"`
	Log      LogConfig   `yaml:"log"`
	Timeouts Timeouts    `yaml:"timeouts"`
}

// StoreConfig locates the SQLite database. An empty Path selects
// store.DefaultDBPath.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // "dev" or "prod"
	Level string `yaml:"level"` // overrides the mode default
	Path  string `yaml:"path"`  // default: stderr
}

// Timeouts bound each backend call. Zero disables the bound.
type Timeouts struct {
	Generate time.Duration `yaml:"generate"`
	Suggest  time.Duration `yaml:"suggest"`
	Image    time.Duration `yaml:"image"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: llm.DefaultConfig(),
		Log: LogConfig{
			Mode:  "dev",
			Level: "warn",
		},
		Timeouts: Timeouts{
			Generate: 120 * time.Second,
			Suggest:  45 * time.Second,
			Image:    60 * time.Second,
		},
	}
}

// Options controls where Load reads from. Zero values select the defaults.
type Options struct {
	// Path is the YAML file. When empty, DefaultPath is used and a missing
	// file is not an error.
	Path string
	// EnvFile is the dotenv file. Default ".env"; a missing file is ignored.
	EnvFile string
	// Getenv reads the process environment. Default os.Getenv.
	Getenv func(string) string
}

// DefaultPath returns $XDG_CONFIG_HOME/lessoncraft/config.yaml, falling
// back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lessoncraft", "config.yaml")
}

// Load reads configuration from path (or DefaultPath when empty), ./.env
// and the process environment.
func Load(path string) (*Config, error) {
	return LoadWith(Options{Path: path})
}

// LoadWith is Load with explicit sources.
func LoadWith(opts Options) (*Config, error) {
	cfg := Default()

	path, required := opts.Path, true
	if path == "" {
		path, required = DefaultPath(), false
	}
	if err := cfg.readFile(path, required); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	// Real environment variables win over .env entries.
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	cfg.applyEnv(lookup)
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	c.LLM.ApplyEnv(getenv)
	if !c.LLM.HasKey() {
		llm.Discover(&c.LLM, getenv)
	}

	if v := getenv("LESSONCRAFT_DB"); v != "" {
		c.Store.Path = v
	}
	if v := getenv("LESSONCRAFT_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := getenv("LESSONCRAFT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LESSONCRAFT_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/franckalain/nourishbloom/internal/flower"
)

// Config holds all application configuration
type Config struct {
	Server struct {
		Port      string `json:"port" yaml:"port"`
		StaticDir string `json:"static_dir" yaml:"static_dir"`
		Debug     bool   `json:"debug" yaml:"debug"`
	} `json:"server" yaml:"server"`

	Database struct {
		Path string `json:"path" yaml:"path"`
	} `json:"database" yaml:"database"`

	ML struct {
		Type       string `json:"type" yaml:"type"` // "none", "local" or "google"
		ConfigPath string `json:"config_path" yaml:"config_path"`
	} `json:"ml" yaml:"ml"`

	Flower struct {
		Selection string `json:"selection" yaml:"selection"` // "daily" or "random"
		Timezone  string `json:"timezone" yaml:"timezone"`
	} `json:"flower" yaml:"flower"`
}

// LoadConfig loads configuration from a JSON or YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is not set in config file")
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./static"
	}
	if c.Database.Path == "" {
		c.Database.Path = "nourishbloom.db"
	}
	if c.ML.Type == "" {
		c.ML.Type = "none"
	}
	if _, err := flower.ParseSelectionMode(c.Flower.Selection); err != nil {
		return err
	}
	if c.Flower.Selection == "" {
		c.Flower.Selection = string(flower.SelectDaily)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid flower timezone: %w", err)
	}
	return nil
}

// SelectionMode returns the configured flower selection mode
func (c *Config) SelectionMode() flower.SelectionMode {
	mode, _ := flower.ParseSelectionMode(c.Flower.Selection)
	return mode
}

// Location returns the timezone days are counted in, local time by default
func (c *Config) Location() (*time.Location, error) {
	if c.Flower.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Flower.Timezone)
}

// LoadEnv reads a .env file into the environment if one exists. Variables
// already set are left alone.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	if path := os.Getenv("NOURISHBLOOM_CONFIG"); path != "" {
		return path
	}

	configDir := "config"
	if _, err := os.Stat(configDir); err == nil {
		return filepath.Join(configDir, "config.json")
	}

	return "config.json"
}

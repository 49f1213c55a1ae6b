package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// BaseConfig provides common configuration functionality
type BaseConfig struct {
	ConfigPath string `json:"-"`
}

// LoadConfig loads configuration from a file. When no file can be read the
// caller falls back to environment variables.
func (c *BaseConfig) LoadConfig(configPath string, envPrefix string, config interface{}) error {
	log := zap.L().Named("ml")

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read %s config: %w", envPrefix, err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse %s config: %w", envPrefix, err)
		}
		log.Info("loaded analyzer configuration", zap.String("path", configPath))
		return nil
	}

	defaultPath := filepath.Join("config", fmt.Sprintf("%s.json", envPrefix))
	if data, err := os.ReadFile(defaultPath); err == nil {
		if err := json.Unmarshal(data, config); err == nil {
			log.Info("loaded analyzer configuration from default file", zap.String("path", defaultPath))
			return nil
		}
	}

	log.Debug("using environment variables for analyzer configuration", zap.String("analyzer", envPrefix))
	return nil
}

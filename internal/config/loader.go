package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"serverhub/internal/types"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
	logger     types.Logger
	v          *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader(configPath string, logger types.Logger) *Loader {
	return &Loader{
		configPath: configPath,
		logger:     logger,
	}
}

// LoadConfig loads configuration from file or environment
func (l *Loader) LoadConfig() (*types.HubConfig, error) {
	v := viper.New()
	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("serverhub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/serverhub/")
		v.AddConfigPath("$HOME/.serverhub")
	}

	// Enable environment variables
	v.SetEnvPrefix("SERVERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			l.logger.Warn("No config file found, using defaults and environment")
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		l.logger.Info("Loaded configuration", "file", v.ConfigFileUsed())
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	l.v = v
	return cfg, nil
}

// ConfigFileUsed returns the file the last LoadConfig read, if any
func (l *Loader) ConfigFileUsed() string {
	if l.v != nil && l.v.ConfigFileUsed() != "" {
		return l.v.ConfigFileUsed()
	}
	return l.configPath
}

// LoadFromBytes loads configuration from byte array (for testing)
func LoadFromBytes(data []byte, format string) (*types.HubConfig, error) {
	v := viper.New()
	v.SetConfigType(format)

	setDefaults(v)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return decode(v)
}

// SaveConfig writes the effective configuration of the last load to path
func (l *Loader) SaveConfig(path string) error {
	if l.v == nil {
		return fmt.Errorf("no configuration loaded")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := l.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	l.logger.Info("Saved configuration", "file", path)
	return nil
}

func decode(v *viper.Viper) (*types.HubConfig, error) {
	var cfg types.HubConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

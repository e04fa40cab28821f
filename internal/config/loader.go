package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultDataDir is the per-user directory for config and logs.
	DefaultDataDir = ".sakura"

	// ConfigFileName is the config file looked up inside the data dir.
	ConfigFileName = "sakura_config.json"
)

// Load loads configuration from an optional file path, environment
// variables (SAKURA_ prefix), and defaults, in that precedence order.
// A missing config file is not an error; the defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("SAKURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case configPath != "":
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	default:
		// A missing per-user file means defaults; a broken one is an error.
		if _, err := readDefaultConfigFile(v); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readDefaultConfigFile tries the well-known per-user location. Returns
// (false, nil) when no file exists there.
func readDefaultConfigFile(v *viper.Viper) (bool, error) {
	dataDir, err := DataDir()
	if err != nil {
		return false, err
	}

	path := filepath.Join(dataDir, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return true, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return true, nil
}

// DataDir returns the per-user data directory, creating it if needed.
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(homeDir, DefaultDataDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return dir, nil
}

package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/kanote/internal/utils"
)

type UserConfig struct {
	Store StoreSettings `toml:"store"`
	KDF   KDFSettings   `toml:"kdf"`
}

type StoreSettings struct {
	Path string `toml:"path"`
}

type KDFSettings struct {
	// Iterations applies to newly initialized stores only. Existing stores
	// always use the count recorded in their config.json.
	Iterations int `toml:"iterations"`
}

// UserConfigPath returns the path to the user's config.toml.
func UserConfigPath() string {
	return filepath.Join(UserKanoteSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserConfigPath()

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig replaces the config file atomically with mode 0600.
func SaveUserConfig(config *UserConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode user config: %w", err)
	}

	configPath := UserConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := utils.WriteFileAtomic(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

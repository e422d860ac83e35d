package configs

import (
	"log"
	"os"
	"path/filepath"
)

// StoreEnvVar names the environment variable the CLI consults for the store path.
const StoreEnvVar = "KANOTE_STORE"

type UserSettings struct {
	UserConfigsPath  string
	DefaultStorePath string
}

var UserKanoteSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserKanoteSettings = &UserSettings{
		UserConfigsPath:  filepath.Join(configDir, "kanote"),
		DefaultStorePath: filepath.Join(dataDir, "kanote"),
	}
}

// ResolveStorePath picks the store directory: flag, then env, then the user
// config, then the default data directory. The CLI supplies flag and env.
func ResolveStorePath(flagValue, envValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if envValue != "" {
		return filepath.Abs(envValue)
	}

	userConfig, err := LoadUserConfig()
	if err != nil {
		return "", err
	}
	if userConfig.Store.Path != "" {
		return filepath.Abs(userConfig.Store.Path)
	}

	return UserKanoteSettings.DefaultStorePath, nil
}

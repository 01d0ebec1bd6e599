// Package conf loads the tool configuration: curve table override, solver
// reporting, and log settings. Defaults ship embedded; a config.yaml in the
// working directory or the user config directory overrides them.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var configFiles embed.FS

// Settings is the full tool configuration tree.
type Settings struct {
	Debug bool // verbose logging

	Tables struct {
		Path string // curve table override; empty uses the embedded table
	}

	Log struct {
		Level string // trace, debug, info, warn, error
		File  string // optional rotating log file path
	}

	Output struct {
		Format string // text or json
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.Mutex
)

// Load reads the configuration file and environment into a Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// GetSettings returns the loaded settings instance, or nil before Load.
func GetSettings() *Settings {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	return settingsInstance
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if userConfig, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfig, "sindex"))
	}

	setDefaults()

	viper.SetEnvPrefix("sindex")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file anywhere on the search path; defaults suffice.
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("debug", false)
	viper.SetDefault("tables.path", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("output.format", "text")
}

// DefaultConfig returns the embedded default configuration file contents.
func DefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading embedded config file: %v", err)
	}
	return string(data)
}

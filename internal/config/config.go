// SPDX-License-Identifier: Apache-2.0

// Package config resolves the CLI configuration from an optional config
// file, SECRETS_* environment variables, and built-in defaults. Flags are
// applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/akihiro/secrets-cli/internal/store"
)

// Config holds the inputs the core depends on plus the backend override.
type Config struct {
	Namespace string `mapstructure:"namespace"`
	BaseDir   string `mapstructure:"base_dir"`
	Backend   string `mapstructure:"backend"`
}

// DefaultBaseDir is where index files live unless overridden: ~/.secrets.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".secrets"
	}
	return filepath.Join(home, ".secrets")
}

// Load reads configuration. When cfgFile is empty, a secrets.toml is
// searched in the working directory, the user config dir, and
// ~/.secrets-cli; a missing file is not an error. An explicitly named
// file must exist.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("namespace", store.DefaultNamespace)
	v.SetDefault("base_dir", DefaultBaseDir())
	v.SetDefault("backend", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("secrets")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(userConfigDir, "secrets-cli"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".secrets-cli"))
		}
	}

	v.SetEnvPrefix("SECRETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if strings.TrimSpace(cfg.Namespace) == "" {
		return nil, errors.New("namespace cannot be empty")
	}
	return &cfg, nil
}

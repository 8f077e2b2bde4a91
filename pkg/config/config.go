// Package config builds the tool configuration from an optional
// config file, MPT_* environment variables, and command-line flags,
// in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	AccountsFile string
	Environment  string // API base URL override; per-account otherwise
	HTTPTimeout  time.Duration
}

// Build assembles the configuration. cfgFile may be empty, in which
// case $HOME/.mpt/config.yaml is tried and silently skipped when
// absent.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MPT")
	v.AutomaticEnv()

	v.SetDefault("accounts_file", filepath.Join(homeDir(), ".mpt", "accounts.yaml"))
	v.SetDefault("environment", "")
	v.SetDefault("http_timeout", "30s")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".mpt"))
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	return &Config{
		AccountsFile: v.GetString("accounts_file"),
		Environment:  v.GetString("environment"),
		HTTPTimeout:  v.GetDuration("http_timeout"),
	}, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

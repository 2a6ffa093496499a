// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-syncstore.
//
// go-syncstore is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration settings.
type Config struct {
	Backend          string
	BackendURL       string
	BackendPath      string
	BackendBucket    string
	BackendEndpoint  string
	BackendAccessKey string
	BackendSecretKey string
	RateLimit        string

	Journal       string
	SchemaVersion int
	StoreBlobs    bool
}

// InitConfig initializes the configuration using Viper.
// Configuration priority: flags > env vars > config file > defaults.
func InitConfig(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("backend", "http")
	v.SetDefault("journal", "./changes.ndjson")
	v.SetDefault("schema-version", 1)
	v.SetDefault("store-blobs", true)

	// Set config file search paths
	if cfgFile != "" {
		// Use config file from the flag if provided
		v.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".syncstore")
		v.SetConfigType("yaml")
	}

	// Bind environment variables
	v.SetEnvPrefix("SYNCSTORE")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return v, nil
}

// GetConfig extracts the configuration from Viper into a Config struct.
func GetConfig(v *viper.Viper) *Config {
	return &Config{
		Backend:          v.GetString("backend"),
		BackendURL:       v.GetString("backend-url"),
		BackendPath:      v.GetString("backend-path"),
		BackendBucket:    v.GetString("backend-bucket"),
		BackendEndpoint:  v.GetString("backend-endpoint"),
		BackendAccessKey: v.GetString("backend-key"),
		BackendSecretKey: v.GetString("backend-secret"),
		RateLimit:        v.GetString("rate-limit"),
		Journal:          v.GetString("journal"),
		SchemaVersion:    v.GetInt("schema-version"),
		StoreBlobs:       v.GetBool("store-blobs"),
	}
}

// GetBackendSettings converts Config to backend settings map.
func (c *Config) GetBackendSettings() map[string]string {
	settings := make(map[string]string)

	if c.BackendURL != "" {
		settings["url"] = c.BackendURL
	}
	if c.BackendPath != "" {
		settings["path"] = c.BackendPath
	}
	if c.BackendBucket != "" {
		settings["bucket"] = c.BackendBucket
	}
	if c.BackendEndpoint != "" {
		settings["endpoint"] = c.BackendEndpoint
	}
	if c.BackendAccessKey != "" {
		settings["accessKey"] = c.BackendAccessKey
	}
	if c.BackendSecretKey != "" {
		settings["secretKey"] = c.BackendSecretKey
	}
	if c.RateLimit != "" {
		settings["rate_limit"] = c.RateLimit
	}

	return settings
}

// ValidateConfig validates the configuration for the given backend.
func ValidateConfig(cfg *Config) error {
	switch cfg.Backend {
	case "http":
		if cfg.BackendURL == "" {
			return ErrBackendURLRequired
		}
	case "local":
		if cfg.BackendPath == "" {
			return ErrBackendPathRequired
		}
		// Expand path if it contains ~
		if strings.HasPrefix(cfg.BackendPath, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			cfg.BackendPath = filepath.Join(home, cfg.BackendPath[1:])
		}
	case "minio":
		if cfg.BackendBucket == "" {
			return ErrBackendBucketRequired
		}
		if cfg.BackendEndpoint == "" {
			return ErrBackendEndpointRequired
		}
	case "memory":
		// No required settings.
	default:
		return ErrUnsupportedBackend
	}

	return nil
}

// Package config loads daemon settings from .env, an optional hrms.yaml and
// HRMS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverNone   = "none"
)

type Config struct {
	Env      string // development, production
	LogLevel string
	HTTP     HTTPConfig
	Storage  StorageConfig
}

type HTTPConfig struct {
	Host string
	Port int
	TLS  bool
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StorageConfig struct {
	Driver        string
	DataDir       string
	Key           string
	SchemaVersion int
	EncryptionKey string // empty disables sealing
}

// Load reads the configuration. path names a YAML file; when empty, hrms.yaml
// is looked up in the working directory and ./config, and may be absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("hrms")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read hrms.yaml: %w", err)
			}
		}
	}

	v.SetEnvPrefix("HRMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Env:      strings.TrimSpace(v.GetString("env")),
		LogLevel: v.GetString("log_level"),
		HTTP: HTTPConfig{
			Host: v.GetString("http_host"),
			Port: v.GetInt("http_port"),
			TLS:  v.GetBool("tls"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("storage_driver"))),
			DataDir:       v.GetString("data_dir"),
			Key:           v.GetString("storage_key"),
			SchemaVersion: v.GetInt("schema_version"),
			EncryptionKey: v.GetString("encryption_key"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_host", "0.0.0.0")
	v.SetDefault("http_port", 7002)
	v.SetDefault("tls", true)
	v.SetDefault("storage_driver", DriverFile)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("storage_key", "hrms-demo-state")
	v.SetDefault("schema_version", 1)
	v.SetDefault("encryption_key", "")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("config: invalid env %q (must be development or production)", c.Env)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: http_port %d out of range", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataDir == "" {
			return errors.New("config: data_dir is required for the file driver")
		}
	case DriverMemory, DriverNone:
	default:
		return fmt.Errorf("config: unknown storage_driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return errors.New("config: storage_key must not be empty")
	}
	if c.Storage.SchemaVersion < 1 {
		return fmt.Errorf("config: schema_version must be positive, got %d", c.Storage.SchemaVersion)
	}
	if n := len(c.Storage.EncryptionKey); n != 0 && n != 32 {
		return fmt.Errorf("config: encryption_key must be 32 bytes, got %d", n)
	}
	return nil
}

// Package config loads the packet-server configuration from flags and
// environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort      = 8080
	DefaultHost      = "127.0.0.1"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Config holds all configuration for the packet server.
type Config struct {
	// Server configuration
	Host string
	Port int

	// Application configuration
	LogLevel  string
	LogFormat string

	// Template override: tried before the built-in fallback hosts.
	TemplateURL string

	// Postgres holding system_config and user_documents. Empty disables
	// the stored mapping override and the document index.
	DatabaseDSN string

	// Object storage for generated packets. Empty bucket disables
	// persistence; generation still returns the PDF inline.
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PACKET")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("logformat", cfg.LogFormat)
	viper.SetDefault("template_url", cfg.TemplateURL)
	viper.SetDefault("db_dsn", cfg.DatabaseDSN)
	viper.SetDefault("storage_endpoint", cfg.StorageEndpoint)
	viper.SetDefault("storage_region", cfg.StorageRegion)
	viper.SetDefault("storage_bucket", cfg.StorageBucket)
	viper.SetDefault("storage_access_key", cfg.StorageAccessKey)
	viper.SetDefault("storage_secret_key", cfg.StorageSecretKey)
	viper.SetDefault("storage_use_ssl", cfg.StorageUseSSL)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("logformat", cfg.LogFormat, "Log format (json, console)")
	pflag.String("template-url", cfg.TemplateURL, "Override URL for the contracting template")
	pflag.String("db-dsn", cfg.DatabaseDSN, "Postgres DSN for config store and document index")
	pflag.String("storage-endpoint", cfg.StorageEndpoint, "S3-compatible storage endpoint")
	pflag.String("storage-region", cfg.StorageRegion, "Storage region")
	pflag.String("storage-bucket", cfg.StorageBucket, "Document bucket name")
	pflag.String("storage-access-key", cfg.StorageAccessKey, "Storage access key")
	pflag.String("storage-secret-key", cfg.StorageSecretKey, "Storage secret key")
	pflag.Bool("storage-use-ssl", cfg.StorageUseSSL, "Use SSL for storage endpoint")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("logformat", pflag.Lookup("logformat"))
	_ = viper.BindPFlag("template_url", pflag.Lookup("template-url"))
	_ = viper.BindPFlag("db_dsn", pflag.Lookup("db-dsn"))
	_ = viper.BindPFlag("storage_endpoint", pflag.Lookup("storage-endpoint"))
	_ = viper.BindPFlag("storage_region", pflag.Lookup("storage-region"))
	_ = viper.BindPFlag("storage_bucket", pflag.Lookup("storage-bucket"))
	_ = viper.BindPFlag("storage_access_key", pflag.Lookup("storage-access-key"))
	_ = viper.BindPFlag("storage_secret_key", pflag.Lookup("storage-secret-key"))
	_ = viper.BindPFlag("storage_use_ssl", pflag.Lookup("storage-use-ssl"))
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.LogFormat = viper.GetString("logformat")
	cfg.TemplateURL = viper.GetString("template_url")
	cfg.DatabaseDSN = viper.GetString("db_dsn")
	cfg.StorageEndpoint = viper.GetString("storage_endpoint")
	cfg.StorageRegion = viper.GetString("storage_region")
	cfg.StorageBucket = viper.GetString("storage_bucket")
	cfg.StorageAccessKey = viper.GetString("storage_access_key")
	cfg.StorageSecretKey = viper.GetString("storage_secret_key")
	cfg.StorageUseSSL = viper.GetBool("storage_use_ssl")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.LogFormat)
	}

	// Storage settings travel together.
	if c.StorageBucket != "" && (c.StorageAccessKey == "" || c.StorageSecretKey == "") {
		return errors.New("storage bucket requires access and secret keys")
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// StorageEnabled reports whether the document bucket is configured.
func (c *Config) StorageEnabled() bool {
	return c.StorageBucket != ""
}

// String returns a string representation of the configuration, secrets
// excluded.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, LogLevel: %s, Bucket: %s, DB: %t}",
		c.Host, c.Port, c.LogLevel, c.StorageBucket, c.DatabaseDSN != "")
}

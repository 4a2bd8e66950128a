package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	Prefs     PrefsConfig     `mapstructure:"prefs"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GatewayConfig contains the content gateway connection settings
type GatewayConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Timeout       string `mapstructure:"timeout"`
	SkipTLSVerify bool   `mapstructure:"skip_tls_verify"`
}

// AuthConfig contains the bearer credential settings. Exactly one of
// Token and TokenFile is used; TokenFile wins when both are set.
type AuthConfig struct {
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token_file"`
}

// DownloadsConfig contains download settings
type DownloadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// PrefsConfig contains the preference store settings
type PrefsConfig struct {
	DBPath  string `mapstructure:"db_path"`
	Profile string `mapstructure:"profile"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from the specified file path
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("gateway.timeout", "30s")
	viper.SetDefault("gateway.skip_tls_verify", false)
	viper.SetDefault("auth.token", "")
	viper.SetDefault("auth.token_file", "")
	viper.SetDefault("downloads.dir", "")
	viper.SetDefault("prefs.db_path", "filedash.db")
	viper.SetDefault("prefs.profile", "default")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate gateway config
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url is required")
	}
	if _, err := time.ParseDuration(c.Gateway.Timeout); err != nil {
		return fmt.Errorf("invalid gateway.timeout: %w", err)
	}

	// Validate auth config
	if c.Auth.Token == "" && c.Auth.TokenFile == "" {
		return fmt.Errorf("one of auth.token or auth.token_file is required")
	}

	// Validate prefs config
	if c.Prefs.DBPath == "" {
		return fmt.Errorf("prefs.db_path is required")
	}

	// Validate logging config
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetTimeout returns the gateway request timeout as time.Duration
func (c *GatewayConfig) GetTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// Package config provides configuration loading and validation for repostats.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTopN      = errors.New("report top_n must be positive")
	ErrInvalidBinHours  = errors.New("resample bin_hours must be positive")
	ErrInvalidTheme     = errors.New("report theme must be one of: light, dark")
	ErrInvalidLogLevel  = errors.New("logging level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("logging format must be one of: text, json")
)

// Config holds all configuration for a repostats run.
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	Resample ResampleConfig `mapstructure:"resample"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ReportConfig holds HTML report settings.
type ReportConfig struct {
	// TopN bounds the number of referrers and paths charted.
	TopN  int    `mapstructure:"top_n"`
	Theme string `mapstructure:"theme"`
}

// ResampleConfig holds time-series resampling settings.
type ResampleConfig struct {
	// BinHours is the width of a resampling bin. The default of 24 yields
	// one output row per UTC day.
	BinHours int `mapstructure:"bin_hours"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from an optional YAML file and environment
// variables prefixed with REPOSTATS_.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	viperCfg.SetDefault("report.top_n", DefaultReportTopN)
	viperCfg.SetDefault("report.theme", DefaultReportTheme)
	viperCfg.SetDefault("resample.bin_hours", DefaultResampleBinHours)
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetEnvPrefix("repostats")
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)

		err := viperCfg.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err := viperCfg.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Report.TopN <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopN, c.Report.TopN)
	}

	if c.Report.Theme != "light" && c.Report.Theme != "dark" {
		return fmt.Errorf("%w: got %q", ErrInvalidTheme, c.Report.Theme)
	}

	if c.Resample.BinHours <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBinHours, c.Resample.BinHours)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration. It is unmarshaled once
// per run from viper (defaults, config file, env, flags) and treated as
// read-only afterwards.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Rules     RulesConfig     `mapstructure:"rules" yaml:"rules"`
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// RulesConfig is the container for per-rule options.
type RulesConfig struct {
	ValidExpect ValidExpectConfig `mapstructure:"valid_expect" yaml:"valid_expect"`
}

// ValidExpectConfig carries the argument-count bounds for the valid-expect
// rule. The bounds are normalized (min/max may arrive swapped) by the
// analyzer, not here; validation only rejects non-positive values.
type ValidExpectConfig struct {
	MinArgs int `mapstructure:"min_args" yaml:"min_args"`
	MaxArgs int `mapstructure:"max_args" yaml:"max_args"`
}

// DiscoveryConfig configures test-file discovery.
type DiscoveryConfig struct {
	Include     []string `mapstructure:"include" yaml:"include"`
	Exclude     []string `mapstructure:"exclude" yaml:"exclude"`
	MaxFileSize int64    `mapstructure:"max_file_size" yaml:"max_file_size"`
	ChangedOnly bool     `mapstructure:"changed_only" yaml:"changed_only"`
}

// EngineConfig configures the concurrent run engine.
type EngineConfig struct {
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	FileTimeout string `mapstructure:"file_timeout" yaml:"file_timeout"`
}

// OutputConfig configures report generation.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`
	FailOn string `mapstructure:"fail_on" yaml:"fail_on"`
}

// HistoryConfig configures the optional Postgres run-history sink. History
// is disabled unless a DSN is provided.
type HistoryConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// Enabled reports whether run history should be persisted.
func (h HistoryConfig) Enabled() bool { return h.DSN != "" }

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "expectlint")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Rules --
	v.SetDefault("rules.valid_expect.min_args", 1)
	v.SetDefault("rules.valid_expect.max_args", 2)

	// -- Discovery --
	v.SetDefault("discovery.include", []string{})
	v.SetDefault("discovery.exclude", []string{})
	v.SetDefault("discovery.max_file_size", int64(2*1024*1024))
	v.SetDefault("discovery.changed_only", false)

	// -- Engine --
	v.SetDefault("engine.concurrency", 8)
	v.SetDefault("engine.file_timeout", "30s")

	// -- Output --
	v.SetDefault("output.format", "text")
	v.SetDefault("output.path", "")
	v.SetDefault("output.fail_on", "error")

	// -- History --
	v.SetDefault("history.dsn", "")
}

// InitializeViper wires the environment binding and config-file search paths
// into the given viper instance. The config file is optional; a missing file
// is not an error.
func InitializeViper(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".expectlint")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("EXPECTLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}

// NewConfigFromViper creates a validated configuration instance from a viper
// object. This is the single merge point of the run: flags, env, file and
// defaults have all been applied to v by the time it is called.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.Rules.ValidExpect.Validate(); err != nil {
		return fmt.Errorf("rules.valid_expect invalid: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine configuration invalid: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output configuration invalid: %w", err)
	}
	if c.Discovery.MaxFileSize <= 0 {
		return fmt.Errorf("discovery.max_file_size must be a positive byte count")
	}
	return nil
}

// Validate checks the valid-expect rule options.
func (r ValidExpectConfig) Validate() error {
	if r.MinArgs < 1 {
		return fmt.Errorf("min_args must be an integer >= 1, got %d", r.MinArgs)
	}
	if r.MaxArgs < 1 {
		return fmt.Errorf("max_args must be an integer >= 1, got %d", r.MaxArgs)
	}
	return nil
}

// Validate checks the engine settings.
func (e EngineConfig) Validate() error {
	if e.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	return nil
}

// Validate checks the output settings.
func (o OutputConfig) Validate() error {
	switch o.Format {
	case "text", "json", "junit", "sarif":
	default:
		return fmt.Errorf("unsupported output format %q (want text, json, junit or sarif)", o.Format)
	}
	switch o.FailOn {
	case "error", "warning", "info", "never":
	default:
		return fmt.Errorf("unsupported fail_on value %q (want error, warning, info or never)", o.FailOn)
	}
	return nil
}

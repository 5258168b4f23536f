// Package config loads and validates the application configuration.
package config

import (
	"github.com/hakim/toolbelt/internal/logger"
)

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Prompts PromptsConfig `json:"prompts" mapstructure:"prompts"`
	Trace   TraceConfig   `json:"trace" mapstructure:"trace"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
	DataDir string        `json:"data_dir" mapstructure:"data_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Console   bool   `json:"console" mapstructure:"console"`
	Pretty    bool   `json:"pretty" mapstructure:"pretty"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// PromptsConfig locates the prompt profile directory.
type PromptsConfig struct {
	Dir     string `json:"dir" mapstructure:"dir"`
	Profile string `json:"profile" mapstructure:"profile"`
	Watch   bool   `json:"watch" mapstructure:"watch"`
}

// TraceConfig holds trace API settings.
type TraceConfig struct {
	Host      string `json:"host" mapstructure:"host"`
	PublicKey string `json:"public_key" mapstructure:"public_key"`
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`
	OutDir    string `json:"out_dir" mapstructure:"out_dir"`
	Schedule  string `json:"schedule" mapstructure:"schedule"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	lc := logger.DefaultConfig()
	return &Config{
		Logging: LoggingConfig{
			Level:     lc.Level,
			Console:   lc.Console,
			Pretty:    lc.Pretty,
			Redaction: lc.Redaction,
		},
		Prompts: PromptsConfig{
			Profile: "agent",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9090",
		},
	}
}

// LoggerConfig converts the logging section for the logger package.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:     c.Logging.Level,
		File:      c.Logging.File,
		Console:   c.Logging.Console,
		Pretty:    c.Logging.Pretty,
		Redaction: c.Logging.Redaction,
	}
}

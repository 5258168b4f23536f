package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for values that would only fail later at
// an inconvenient time.
func Validate(cfg *Config) error {
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}

	if cfg.Trace.Host != "" {
		u, err := url.Parse(cfg.Trace.Host)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid trace host %q: must be an absolute URL", cfg.Trace.Host)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid trace host %q: scheme must be http or https", cfg.Trace.Host)
		}
	}

	// Keys only make sense together with a host.
	if cfg.Trace.Host == "" && (cfg.Trace.PublicKey != "" || cfg.Trace.SecretKey != "") {
		return fmt.Errorf("trace keys configured without a trace host")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return fmt.Errorf("metrics enabled without a listen address")
	}

	return nil
}

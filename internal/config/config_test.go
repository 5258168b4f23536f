package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "agent", cfg.Prompts.Profile)
	assert.True(t, cfg.Logging.Redaction)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Prompts.Dir)
	assert.NotEmpty(t, cfg.Trace.OutDir)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolbelt.json")
	content := `{
		"logging": {"level": "debug", "console": true},
		"prompts": {"dir": "` + filepath.ToSlash(dir) + `", "profile": "reasoner"},
		"trace": {"host": "https://traces.example.com", "public_key": "pk", "secret_key": "sk"},
		"data_dir": "` + filepath.ToSlash(dir) + `"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "reasoner", cfg.Prompts.Profile)
	assert.Equal(t, "https://traces.example.com", cfg.Trace.Host)
	assert.Equal(t, filepath.Join(dir, "traces"), cfg.Trace.OutDir)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolbelt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "relative trace host", mutate: func(c *Config) {
			c.Trace.Host = "traces.example.com"
		}, wantErr: true},
		{name: "ftp trace host", mutate: func(c *Config) {
			c.Trace.Host = "ftp://traces.example.com"
		}, wantErr: true},
		{name: "keys without host", mutate: func(c *Config) {
			c.Trace.PublicKey = "pk"
		}, wantErr: true},
		{name: "valid trace config", mutate: func(c *Config) {
			c.Trace.Host = "https://traces.example.com"
			c.Trace.PublicKey = "pk"
			c.Trace.SecretKey = "sk"
		}},
		{name: "metrics enabled without addr", mutate: func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ""
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Logging.File = "/tmp/x.log"

	lc := cfg.LoggerConfig()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "/tmp/x.log", lc.File)
	assert.True(t, lc.Redaction)
}

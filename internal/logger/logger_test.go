package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "toolbelt.log")

	l, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	defer l.Close()

	zl := l.Zerolog()
	zl.Info().Str("component", "test").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "component")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "chatty", Console: true})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestRedactor_MasksTraceKeys(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name  string
		input string
	}{
		{name: "public trace key", input: "using pk-lf-1234567890abcdef"},
		{name: "secret trace key", input: "auth with sk-lf-abcdef1234567890"},
		{name: "basic auth header", input: "Authorization: Basic cGstbGY6c2stbGY="},
		{name: "bearer token", input: "Bearer abc.def.ghi"},
		{name: "password field", input: `password: "hunter2"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Redact(tt.input)
			assert.Contains(t, out, "[REDACTED]")
		})
	}
}

func TestRedactor_LeavesOrdinaryTextAlone(t *testing.T) {
	r := NewRedactor()
	assert.Equal(t, "tool add registered", r.Redact("tool add registered"))
}

func TestRedactor_WrapWriter(t *testing.T) {
	var buf bytes.Buffer
	r := NewRedactor()
	w := r.Wrap(&buf)

	msg := []byte("key sk-lf-1234567890abcdef leaked")
	n, err := w.Write(msg)
	require.NoError(t, err)
	assert.Equal(t, len(msg), n)
	assert.NotContains(t, buf.String(), "sk-lf-1234567890abcdef")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestRedactor_AddPattern(t *testing.T) {
	r := NewRedactor()
	require.NoError(t, r.AddPattern(`internal-[0-9]+`))
	assert.Contains(t, r.Redact("id internal-42"), "[REDACTED]")

	assert.Error(t, r.AddPattern(`([`))
}

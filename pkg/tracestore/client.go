// Package tracestore fetches execution traces from a Langfuse-compatible
// trace API for diagnostics. The tool registry itself never performs network
// I/O; this client is the collaborator consulted when a trace id needs to be
// inspected.
package tracestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrTraceNotFound is returned when the API reports no trace for the id.
	ErrTraceNotFound = errors.New("trace not found")

	// ErrBadConfig is returned when host or credentials are missing.
	ErrBadConfig = errors.New("trace store configuration incomplete")
)

// Config holds connection settings for the trace API.
type Config struct {
	Host      string // e.g. https://cloud.langfuse.com
	PublicKey string
	SecretKey string
	Timeout   time.Duration
}

// Client is a read-only HTTP client for the public trace API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates the configuration and returns a client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Host) == "" ||
		strings.TrimSpace(cfg.PublicKey) == "" ||
		strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("host, public key and secret key are required: %w", ErrBadConfig)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg.Host = strings.TrimRight(strings.TrimSpace(cfg.Host), "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// FetchTrace retrieves one trace by id from
// `{host}/api/public/traces/{id}` using Basic auth.
func (c *Client) FetchTrace(ctx context.Context, traceID string) (map[string]any, error) {
	traceID = strings.TrimSpace(traceID)
	if traceID == "" {
		return nil, fmt.Errorf("trace id must be a non-empty string")
	}

	endpoint := fmt.Sprintf("%s/api/public/traces/%s", c.cfg.Host, url.PathEscape(traceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace request: %w", err)
	}
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "toolbelt/trace-client")
	req.Header.Set("X-Request-Id", uuid.New().String())

	log.Debug().Str("trace_id", traceID).Str("host", c.cfg.Host).Msg("Fetching trace")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach trace host: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("trace %s: %w", traceID, ErrTraceNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail := strings.TrimSpace(string(body))
		return nil, fmt.Errorf("trace API returned %d: %s", resp.StatusCode, detail)
	}

	var trace map[string]any
	if err := json.Unmarshal(body, &trace); err != nil {
		return nil, fmt.Errorf("trace API returned non-JSON response: %w", err)
	}
	return trace, nil
}

// PrettyJSON renders a fetched trace for human inspection.
func PrettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

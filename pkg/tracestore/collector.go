package tracestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CollectorConfig configures periodic trace collection.
type CollectorConfig struct {
	OutDir   string   // traces land in <OutDir>/<trace-id>/trace.json
	TraceIDs []string // ids to refresh on every run
	Expr     string   // standard 5-field cron expression
	TZ       string   // optional IANA timezone for the schedule
}

// Collector periodically pulls a fixed set of traces and writes each one to
// disk for offline workflow mining.
type Collector struct {
	client *Client
	cfg    CollectorConfig
	sched  cron.Schedule
	loc    *time.Location
}

// NewCollector parses the cron expression and returns a collector.
func NewCollector(client *Client, cfg CollectorConfig) (*Collector, error) {
	if client == nil {
		return nil, fmt.Errorf("trace client is required")
	}
	if cfg.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.Expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	loc := time.Local
	if cfg.TZ != "" {
		loc, err = time.LoadLocation(cfg.TZ)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	return &Collector{client: client, cfg: cfg, sched: sched, loc: loc}, nil
}

// NextRun returns the next scheduled collection time after now.
func (c *Collector) NextRun(now time.Time) time.Time {
	return c.sched.Next(now.In(c.loc))
}

// Run collects traces on the configured schedule until ctx is cancelled.
func (c *Collector) Run(ctx context.Context) error {
	for {
		next := c.NextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			if err := c.CollectOnce(ctx); err != nil {
				log.Warn().Err(err).Msg("Trace collection run failed")
			}
		}
	}
}

// CollectOnce fetches every configured trace id and writes the results. It
// keeps going past per-trace failures and returns the last error seen.
func (c *Collector) CollectOnce(ctx context.Context) error {
	var lastErr error
	for _, id := range c.cfg.TraceIDs {
		trace, err := c.client.FetchTrace(ctx, id)
		if err != nil {
			log.Warn().Str("trace_id", id).Err(err).Msg("Failed to fetch trace")
			lastErr = err
			continue
		}
		if err := c.write(id, trace); err != nil {
			log.Warn().Str("trace_id", id).Err(err).Msg("Failed to write trace")
			lastErr = err
			continue
		}
		log.Info().Str("trace_id", id).Msg("Trace collected")
	}
	return lastErr
}

func (c *Collector) write(traceID string, trace map[string]any) error {
	dir := filepath.Join(c.cfg.OutDir, traceID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	path := filepath.Join(dir, "trace.json")
	if err := os.WriteFile(path, []byte(PrettyJSON(trace)), 0o644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	return nil
}

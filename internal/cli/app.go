package cli

import (
	"fmt"

	"github.com/hakim/toolbelt/internal/config"
	"github.com/hakim/toolbelt/internal/logger"
	"github.com/hakim/toolbelt/internal/metrics"
	"github.com/hakim/toolbelt/pkg/builtin"
	"github.com/hakim/toolbelt/pkg/tool"
)

// app bundles the dependencies every subcommand needs: configuration, the
// global logger, the metrics recorder, and a registry pre-loaded with the
// built-in tools.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	registry *tool.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	lg, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	m := metrics.New()
	registry := tool.NewRegistry(tool.WithRecorder(m))
	if err := builtin.Register(registry); err != nil {
		lg.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      lg,
		metrics:  m,
		registry: registry,
	}, nil
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}

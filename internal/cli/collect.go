package cli

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hakim/toolbelt/pkg/tracestore"
)

var (
	collectEvery string
	collectTZ    string
	collectOnce  bool
)

var collectCmd = &cobra.Command{
	Use:   "collect <trace-id> [trace-id...]",
	Short: "Collect traces to disk, once or on a schedule",
	Long: `Fetch the given traces from the trace API and write each one under
the trace output directory. With --once the collection runs a single time;
otherwise it repeats on the cron schedule until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectEvery, "every", "", "cron schedule (default from config, else */15 * * * *)")
	collectCmd.Flags().StringVar(&collectTZ, "tz", "", "IANA timezone for the schedule")
	collectCmd.Flags().BoolVar(&collectOnce, "once", false, "collect once and exit")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	client, err := tracestore.NewClient(tracestore.Config{
		Host:      a.cfg.Trace.Host,
		PublicKey: a.cfg.Trace.PublicKey,
		SecretKey: a.cfg.Trace.SecretKey,
	})
	if err != nil {
		return err
	}

	expr := collectEvery
	if expr == "" {
		expr = a.cfg.Trace.Schedule
	}
	if expr == "" {
		expr = "*/15 * * * *"
	}

	collector, err := tracestore.NewCollector(client, tracestore.CollectorConfig{
		OutDir:   a.cfg.Trace.OutDir,
		TraceIDs: args,
		Expr:     expr,
		TZ:       collectTZ,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if collectOnce {
		return collector.CollectOnce(ctx)
	}

	if a.cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.metrics.Handler())
		srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
		go func() {
			log.Info().Str("addr", a.cfg.Metrics.Addr).Msg("Metrics endpoint listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("Metrics endpoint failed")
			}
		}()
		defer srv.Close()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Collecting %d trace(s), next run at %s\n",
		len(args), collector.NextRun(time.Now()).Format(time.RFC3339))

	if err := collector.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

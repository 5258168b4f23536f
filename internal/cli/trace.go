package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hakim/toolbelt/pkg/tracestore"
)

var traceSave bool

var traceCmd = &cobra.Command{
	Use:   "trace <trace-id>",
	Short: "Fetch an execution trace from the trace API",
	Long: `Fetch one execution trace from the configured trace API and print it
as indented JSON. Requires trace host and keys in the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&traceSave, "save", false, "also write the trace under the trace output directory")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
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

	trace, err := client.FetchTrace(cmd.Context(), args[0])
	if err != nil {
		a.metrics.TraceFetchObserved("error")
		return err
	}
	a.metrics.TraceFetchObserved("ok")

	rendered := tracestore.PrettyJSON(trace)
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	if traceSave {
		dir := filepath.Join(a.cfg.Trace.OutDir, args[0])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		path := filepath.Join(dir, "trace.json")
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write trace file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	execArgs    string
	execTimeout time.Duration
)

var execCmd = &cobra.Command{
	Use:   "exec <tool-id>",
	Short: "Execute a registered tool",
	Long: `Execute a registered tool with JSON arguments. Arguments are validated
against the tool's parameter schema before the handler runs; synchronous and
asynchronous tools behave identically from here.`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execArgs, "args", "{}", "tool arguments as a JSON object")
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 30*time.Second, "execution timeout")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	toolArgs, err := parseToolArgs(execArgs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), execTimeout)
	defer cancel()

	result, err := a.registry.ExecuteByName(ctx, args[0], toolArgs)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderResult(result))
	return nil
}

func parseToolArgs(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	return parsed, nil
}

// renderResult prints strings raw and everything else as indented JSON.
func renderResult(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <tool-id>",
	Short: "Show a tool's full description and parameter schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	t := a.registry.Get(args[0])
	if t == nil {
		return fmt.Errorf("tool %q is not registered", args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", t.ID())
	fmt.Fprintf(out, "Mode:     %s\n", t.Mode())
	fmt.Fprintf(out, "Summary:  %s\n", t.Summary())
	if kw := t.Keywords(); len(kw) > 0 {
		fmt.Fprintf(out, "Keywords: %s\n", strings.Join(kw, ", "))
	}
	if details := t.Details(); details != "" {
		fmt.Fprintf(out, "\n%s\n", details)
	}

	schema := t.Schema()
	required := make(map[string]bool)
	for _, name := range schema.Required() {
		required[name] = true
	}
	if keys := schema.AllowedKeys(); len(keys) > 0 {
		fmt.Fprintln(out, "\nParameters:")
		for _, key := range keys {
			marker := "optional"
			if required[key] {
				marker = "required"
			}
			fmt.Fprintf(out, "  %-12s %s\n", key, marker)
		}
	} else {
		fmt.Fprintln(out, "\nParameters: none")
	}

	fmt.Fprintf(out, "\nSchema:\n%s\n", schema.String())
	return nil
}

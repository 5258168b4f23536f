package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	Long:  `List every registered tool with its mode and summary, in registration order.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tools := a.registry.List()
	if len(tools) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tools registered")
		return nil
	}

	for _, t := range tools {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-6s %s\n", t.ID(), t.Mode(), t.Summary())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d tool(s) registered\n", len(tools))
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hakim/toolbelt/pkg/tool"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tools by keyword",
	Long: `Search registered tools against a free-text query. Without a query,
an interactive prompt reads goals from stdin until an exit word is entered.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

// exitWords end the interactive prompt.
var exitWords = map[string]bool{
	"bye":  true,
	"quit": true,
	"exit": true,
	"q":    true,
}

func isExitWord(s string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(s))]
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) > 0 {
		printMatches(cmd.OutOrStdout(), a.registry.Search(strings.Join(args, " ")))
		return nil
	}

	return searchLoop(cmd.InOrStdin(), cmd.OutOrStdout(), a.registry)
}

// searchLoop prompts for goals until EOF or an exit word.
func searchLoop(in io.Reader, out io.Writer, reg *tool.Registry) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "goal> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isExitWord(line) {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		printMatches(out, reg.Search(line))
	}
}

func printMatches(out io.Writer, tools []*tool.Tool) {
	if len(tools) == 0 {
		fmt.Fprintln(out, "No matching tools")
		return
	}
	for _, t := range tools {
		fmt.Fprintf(out, "%-12s %s\n", t.ID(), t.Summary())
	}
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hakim/toolbelt/pkg/prompts"
)

var promptProfile string

var promptCmd = &cobra.Command{
	Use:   "prompt [key]",
	Short: "Show prompts from the active profile",
	Long: `Show prompts from the configured profile directory. Without a key,
lists every prompt key in the profile; with a key, prints its text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptProfile, "profile", "", "profile name (default from config)")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	profile := promptProfile
	if profile == "" {
		profile = a.cfg.Prompts.Profile
	}

	loaded, err := prompts.Load(a.cfg.Prompts.Dir, profile, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		text, ok := loaded[args[0]]
		if !ok {
			return fmt.Errorf("prompt %q not found in profile %q", args[0], profile)
		}
		fmt.Fprintln(out, text)
		return nil
	}

	keys := make([]string, 0, len(loaded))
	for key := range loaded {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(out, key)
	}
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var locCmd = &cobra.Command{
	Use:   "loc [dir]",
	Short: "Count Go lines of code under a directory",
	Long: `Count Go source lines under a directory (default: current directory).
Reports total lines and code lines, where blank lines and comment-only lines
are excluded from the code count. Vendored and hidden trees are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoc,
}

func init() {
	rootCmd.AddCommand(locCmd)
}

type locStats struct {
	Files int
	Total int
	Code  int
}

func runLoc(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	stats, err := countGoLines(root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files:       %d\n", stats.Files)
	fmt.Fprintf(out, "Total lines: %d\n", stats.Total)
	fmt.Fprintf(out, "Code lines:  %d\n", stats.Code)
	return nil
}

func countGoLines(root string) (locStats, error) {
	var stats locStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if name == "vendor" || name == "testdata" ||
				strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") {
			return nil
		}
		total, code, err := countFileLines(path)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Total += total
		stats.Code += code
		return nil
	})
	return stats, err
}

// countFileLines returns total and code line counts for one file. Block
// comments are tracked line by line; a line that only opens, continues, or
// closes a comment does not count as code.
func countFileLines(path string) (total, code int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	inBlock := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		total++
		line := strings.TrimSpace(scanner.Text())
		if inBlock {
			if idx := strings.Index(line, "*/"); idx >= 0 {
				inBlock = false
				if strings.TrimSpace(line[idx+2:]) != "" {
					code++
				}
			}
			continue
		}
		switch {
		case line == "":
		case strings.HasPrefix(line, "//"):
		case strings.HasPrefix(line, "/*"):
			if !strings.Contains(line, "*/") {
				inBlock = true
			}
		default:
			code++
		}
	}
	return total, code, scanner.Err()
}

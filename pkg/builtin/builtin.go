// Package builtin registers the baseline tools shipped with the CLI.
package builtin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hakim/toolbelt/pkg/tool"
)

// Register installs the baseline tools into the registry.
func Register(reg *tool.Registry) error {
	if reg == nil {
		return errors.New("tool registry is required")
	}

	defs := []tool.Definition{
		echoTool(),
		addTool(),
		upperTool(),
		nowTool(),
	}
	for _, def := range defs {
		if _, err := reg.Register(def); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", def.Name, err)
		}
	}
	return nil
}

func echoTool() tool.Definition {
	return tool.Definition{
		Name:     "echo",
		Doc:      "Echo the given text back to the caller.\nReturns the input text unchanged.",
		Keywords: []string{"repeat", "say"},
		Params: []tool.Param{
			{Name: "text", Type: "string", Description: "Text to echo"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			text, ok := args["text"].(string)
			if !ok {
				return nil, fmt.Errorf("text must be a string")
			}
			return text, nil
		},
	}
}

func addTool() tool.Definition {
	return tool.Definition{
		Name:     "add",
		Doc:      "Add two numbers together.\nReturns the arithmetic sum of a and b.",
		Keywords: []string{"addition", "sum", "plus", "math"},
		Params: []tool.Param{
			{Name: "a", Type: "number", Description: "First operand"},
			{Name: "b", Type: "number", Description: "Second operand"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			a, aok := args["a"].(float64)
			b, bok := args["b"].(float64)
			if !aok || !bok {
				return nil, fmt.Errorf("a and b must be numbers")
			}
			return a + b, nil
		},
	}
}

// upperTool runs asynchronously so the registry's dual-mode dispatch is
// exercised by a shipped tool, not only by tests.
func upperTool() tool.Definition {
	return tool.Definition{
		Name:     "upper",
		Doc:      "Uppercase the given text.\nReturns the text with every letter capitalized.",
		Keywords: []string{"uppercase", "capitalize", "shout"},
		Params: []tool.Param{
			{Name: "text", Type: "string", Description: "Text to transform"},
		},
		AsyncHandler: func(ctx context.Context, args map[string]any) (<-chan tool.Result, error) {
			text, ok := args["text"].(string)
			if !ok {
				return nil, fmt.Errorf("text must be a string")
			}
			ch := make(chan tool.Result, 1)
			go func() {
				defer close(ch)
				select {
				case ch <- tool.Result{Value: strings.ToUpper(text)}:
				case <-ctx.Done():
				}
			}()
			return ch, nil
		},
	}
}

func nowTool() tool.Definition {
	return tool.Definition{
		Name:     "now",
		Doc:      "Report the current time.\nReturns an RFC 3339 timestamp, optionally in the given IANA timezone.",
		Keywords: []string{"time", "clock", "date"},
		Params: []tool.Param{
			{Name: "tz", Type: "string", Description: "IANA timezone name", Default: "UTC"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			tz, _ := args["tz"].(string)
			if tz == "" {
				tz = "UTC"
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
			}
			return time.Now().In(loc).Format(time.RFC3339), nil
		},
	}
}

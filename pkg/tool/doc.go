// Package tool registers plain Go functions as named, described, schema-annotated
// tools that an agent can discover and invoke.
//
// Invariants:
// - Tool ids are unique within a Registry; duplicate registration fails.
// - Tools are immutable once constructed.
// - Arguments are schema-validated before a handler runs.
// - Execute returns the final value whether the handler is sync or async.
//
// Usage:
//
//	reg := tool.NewRegistry()
//	_, _ = reg.Register(tool.Definition{
//		Name: "echo",
//		Doc:  "Echo the given text back.\nReturns the input unchanged.",
//		Params: []tool.Param{{Name: "text", Type: "string", Description: "text to echo"}},
//		Handler: func(ctx context.Context, args map[string]any) (any, error) { return args["text"], nil },
//	})
package tool

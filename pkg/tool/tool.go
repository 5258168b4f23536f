package tool

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
)

// Handler is the signature for synchronous tool functions.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// AsyncHandler is the signature for asynchronous tool functions. The handler
// returns immediately with a channel that delivers exactly one Result when
// the computation finishes.
type AsyncHandler func(ctx context.Context, args map[string]any) (<-chan Result, error)

// Result is the terminal outcome of an asynchronous tool invocation.
type Result struct {
	Value any
	Err   error
}

// Mode tags how a tool's wrapped function executes. It is fixed once at
// construction so dispatch in Execute stays auditable.
type Mode int

const (
	ModeSync Mode = iota
	ModeAsync
)

func (m Mode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

// Param declares one parameter of a tool function. A parameter without a
// default value is required.
type Param struct {
	Name        string
	Type        string // string, number, integer, boolean, object, array
	Description string
	Default     any
}

// Definition is the raw, not-yet-wrapped description of a tool. Exactly one
// of Handler and AsyncHandler must be set. Name may be left empty when
// Handler or AsyncHandler is a named function, in which case the id is
// derived from the function's declared name.
type Definition struct {
	Name         string
	Doc          string
	Params       []Param
	Keywords     []string
	Handler      Handler
	AsyncHandler AsyncHandler
}

// Tool is an immutable wrapper around one function together with metadata
// derived at registration time.
type Tool struct {
	id       string
	summary  string
	details  string
	schema   *ParameterSchema
	keywords []string
	mode     Mode
	fn       Handler
	asyncFn  AsyncHandler
}

func newTool(def Definition) (*Tool, error) {
	if def.Handler == nil && def.AsyncHandler == nil {
		return nil, fmt.Errorf("tool requires a handler: %w", ErrInvalidArgument)
	}
	if def.Handler != nil && def.AsyncHandler != nil {
		return nil, fmt.Errorf("tool cannot have both sync and async handlers: %w", ErrInvalidArgument)
	}

	mode := ModeSync
	id := def.Name
	if id == "" {
		if def.Handler != nil {
			id = functionName(def.Handler)
		} else {
			id = functionName(def.AsyncHandler)
		}
	}
	if def.AsyncHandler != nil {
		mode = ModeAsync
	}
	if id == "" {
		return nil, fmt.Errorf("tool name cannot be empty: %w", ErrInvalidArgument)
	}

	doc := strings.TrimSpace(def.Doc)
	if doc == "" {
		log.Warn().
			Str("tool", id).
			Msg("Tool has no documentation; the first two lines are used as the prompt summary")
	}

	schema, err := schemaFromParams(def.Params)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", id, err)
	}

	keywords := make([]string, 0, len(def.Keywords))
	for _, kw := range def.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return &Tool{
		id:       id,
		summary:  summarize(id, doc),
		details:  doc,
		schema:   schema,
		keywords: keywords,
		mode:     mode,
		fn:       def.Handler,
		asyncFn:  def.AsyncHandler,
	}, nil
}

// ID returns the tool's stable identifier.
func (t *Tool) ID() string { return t.id }

// Summary returns the short prompt-friendly description: the tool id
// followed by the first two non-blank lines of its documentation. Empty when
// the tool was registered without documentation.
func (t *Tool) Summary() string { return t.summary }

// Details returns the full documentation text, trimmed.
func (t *Tool) Details() string { return t.details }

// Schema returns the tool's parameter schema.
func (t *Tool) Schema() *ParameterSchema { return t.schema }

// Keywords returns the extra search terms supplied at registration.
func (t *Tool) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

// Mode returns whether the wrapped function runs synchronously or
// asynchronously.
func (t *Tool) Mode() Mode { return t.mode }

// IsAsync reports whether Execute must wait on a result channel.
func (t *Tool) IsAsync() bool { return t.mode == ModeAsync }

// summarize derives the prompt summary from documentation text: the first
// two non-blank lines joined by a space and prefixed with the tool id.
// Missing documentation yields an empty summary.
func summarize(id, doc string) string {
	if doc == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}
	return fmt.Sprintf("%s: %s", id, strings.Join(lines, " "))
}

// functionName derives a tool id from a function's declared name via the
// runtime, e.g. "github.com/x/pkg.Add" becomes "Add" and a bound method
// "pkg.(*Calc).Add-fm" becomes "Add". Anonymous functions produce
// compiler-generated names; register those with an explicit Definition.Name.
func functionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}

package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

// Recorder receives registry observations. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ToolRegistered(id string)
	ExecutionObserved(id, status string, d time.Duration)
	SearchObserved(query string, hits int)
}

// Registry owns the mapping from tool id to Tool. Registration is expected
// to happen once at startup; Search and Execute may then be called
// concurrently.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]*Tool
	order    []string
	recorder Recorder
}

// Option configures a Registry.
type Option func(*Registry)

// WithRecorder attaches a metrics recorder to the registry.
func WithRecorder(r Recorder) Option {
	return func(reg *Registry) {
		reg.recorder = r
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		tools: make(map[string]*Tool),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Register wraps the definition into a Tool and inserts it under its derived
// id. Registering a second tool under the same id fails; ids are never
// silently overwritten.
func (r *Registry) Register(def Definition) (*Tool, error) {
	t, err := newTool(def)
	if err != nil {
		return nil, fmt.Errorf("invalid tool definition: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.id]; exists {
		return nil, fmt.Errorf("tool %s: %w", t.id, ErrDuplicateTool)
	}
	r.tools[t.id] = t
	r.order = append(r.order, t.id)

	if r.recorder != nil {
		r.recorder.ToolRegistered(t.id)
	}
	log.Info().
		Str("tool", t.id).
		Str("mode", t.mode.String()).
		Strs("keywords", t.keywords).
		Msg("Tool registered")

	return t, nil
}

// RegisterFunc is the decorator form of Register: it registers fn under its
// declared name with the given documentation and optional keywords, then
// returns fn unchanged so the call site stays directly usable. A broken
// definition is a startup-time programmer error and panics.
func (r *Registry) RegisterFunc(fn Handler, doc string, keywords ...string) Handler {
	if _, err := r.Register(Definition{Doc: doc, Keywords: keywords, Handler: fn}); err != nil {
		panic(fmt.Sprintf("tool registration failed: %v", err))
	}
	return fn
}

// RegisterAsyncFunc is RegisterFunc for asynchronous handlers.
func (r *Registry) RegisterAsyncFunc(fn AsyncHandler, doc string, keywords ...string) AsyncHandler {
	if _, err := r.Register(Definition{Doc: doc, Keywords: keywords, AsyncHandler: fn}); err != nil {
		panic(fmt.Sprintf("tool registration failed: %v", err))
	}
	return fn
}

// Load registers a raw, not-yet-wrapped tool definition: a Definition, a
// *Definition, or a bare handler function. An already-constructed Tool is
// rejected with ErrInvalidArgument, since re-wrapping a wrapped tool would
// duplicate its derived metadata.
func (r *Registry) Load(v any) (*Tool, error) {
	switch d := v.(type) {
	case *Tool:
		return nil, fmt.Errorf("cannot load an already-wrapped Tool: %w", ErrInvalidArgument)
	case Tool:
		return nil, fmt.Errorf("cannot load an already-wrapped Tool: %w", ErrInvalidArgument)
	case Definition:
		return r.Register(d)
	case *Definition:
		if d == nil {
			return nil, fmt.Errorf("nil definition: %w", ErrInvalidArgument)
		}
		return r.Register(*d)
	case Handler:
		return r.Register(Definition{Handler: d})
	case func(context.Context, map[string]any) (any, error):
		return r.Register(Definition{Handler: d})
	case AsyncHandler:
		return r.Register(Definition{AsyncHandler: d})
	case func(context.Context, map[string]any) (<-chan Result, error):
		return r.Register(Definition{AsyncHandler: d})
	default:
		return nil, fmt.Errorf("unsupported tool definition type %T: %w", v, ErrInvalidArgument)
	}
}

// Get returns the tool registered under id, or nil.
func (r *Registry) Get(id string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[id]
}

// List returns all tools in registration order.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Search returns every tool matching the free-text query, in registration
// order. A tool matches when a query token equals one of its keywords, a
// query token appears in its summary, or the query contains its id.
// An empty result is not an error.
func (r *Registry) Search(query string) []*Tool {
	q := strings.ToLower(strings.TrimSpace(query))
	tokens := strings.Fields(q)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Tool
	for _, id := range r.order {
		t := r.tools[id]
		if matches(t, q, tokens) {
			out = append(out, t)
		}
	}

	if r.recorder != nil {
		r.recorder.SearchObserved(query, len(out))
	}
	log.Debug().Str("query", query).Int("hits", len(out)).Msg("Tool search")

	return out
}

func matches(t *Tool, query string, tokens []string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(query, strings.ToLower(t.id)) {
		return true
	}
	summary := strings.ToLower(t.summary)
	for _, token := range tokens {
		if summary != "" && strings.Contains(summary, token) {
			return true
		}
		for _, kw := range t.keywords {
			if kw == token {
				return true
			}
		}
	}
	return false
}

// Execute invokes the tool with the arguments expanded as named parameters.
// Synchronous handlers are called directly; asynchronous handlers are driven
// to completion so the caller's interface is synchronous either way. Handler
// failures propagate wrapped with the tool id, with the original error kind
// preserved for errors.Is and errors.As. One attempt per call, no retries.
func (r *Registry) Execute(ctx context.Context, t *Tool, args map[string]any) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tool: %w", ErrInvalidArgument)
	}
	if args == nil {
		args = map[string]any{}
	}

	invocationID, _ := gonanoid.New()
	start := time.Now()

	if err := t.schema.Validate(args); err != nil {
		r.observe(t.id, "invalid", start)
		return nil, fmt.Errorf("tool %s: %w", t.id, err)
	}

	log.Debug().
		Str("tool", t.id).
		Str("invocation", invocationID).
		Str("mode", t.mode.String()).
		Interface("args", args).
		Msg("Executing tool")

	var (
		out any
		err error
	)
	switch t.mode {
	case ModeAsync:
		out, err = r.executeAsync(ctx, t, args)
	default:
		out, err = t.fn(ctx, args)
	}

	duration := time.Since(start)
	if err != nil {
		r.observe(t.id, "error", start)
		log.Error().
			Str("tool", t.id).
			Str("invocation", invocationID).
			Dur("duration", duration).
			Err(err).
			Msg("Tool execution failed")
		return nil, fmt.Errorf("tool %s: %w", t.id, err)
	}

	r.observe(t.id, "ok", start)
	log.Debug().
		Str("tool", t.id).
		Str("invocation", invocationID).
		Dur("duration", duration).
		Msg("Tool execution completed")

	return out, nil
}

// executeAsync starts the async handler and waits for its single result.
// The wait is unbounded unless the caller's context imposes a deadline; a
// context hit abandons the computation rather than force-terminating it.
func (r *Registry) executeAsync(ctx context.Context, t *Tool, args map[string]any) (any, error) {
	ch, err := t.asyncFn(ctx, args)
	if err != nil {
		return nil, err
	}
	select {
	case res, ok := <-ch:
		if !ok {
			return nil, fmt.Errorf("async tool closed its result channel without a result")
		}
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ExecuteByName looks up the tool by id and executes it.
func (r *Registry) ExecuteByName(ctx context.Context, id string, args map[string]any) (any, error) {
	t := r.Get(id)
	if t == nil {
		return nil, fmt.Errorf("tool %s: %w", id, ErrToolNotFound)
	}
	return r.Execute(ctx, t, args)
}

func (r *Registry) observe(id, status string, start time.Time) {
	if r.recorder != nil {
		r.recorder.ExecutionObserved(id, status, time.Since(start))
	}
}

type catalogEntry struct {
	Summary    string          `json:"summary"`
	Parameters json.RawMessage `json:"parameters"`
}

// Catalog renders the prompt-ready tool catalog: per tool, the summary and
// the serialized parameter schema, in registration order. The schema text is
// embedded verbatim; downstream prompt builders consume it as-is.
func (r *Registry) Catalog() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]catalogEntry, 0, len(r.order))
	for _, id := range r.order {
		t := r.tools[id]
		entries = append(entries, catalogEntry{
			Summary:    t.summary,
			Parameters: json.RawMessage(t.schema.String()),
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

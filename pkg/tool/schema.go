package tool

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// Field describes one parameter inside a schema fragment.
type Field struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// Fragment maps parameter names to their metadata. A tool ordinarily has a
// single fragment; tools accepting one of several argument shapes carry a
// list of fragments.
type Fragment map[string]Field

// ParameterSchema holds one or more schema fragments together with the
// compiled JSON Schema used to validate arguments before execution.
type ParameterSchema struct {
	fragments []Fragment
	multi     bool
	required  []string
	compiled  []*gojsonschema.Schema
}

// NewSchema builds a ParameterSchema from a single fragment. The fragment
// must be non-empty.
func NewSchema(frag Fragment) (*ParameterSchema, error) {
	if len(frag) == 0 {
		return nil, ErrEmptySchema
	}
	return buildSchema([]Fragment{frag}, false, requiredKeys(frag))
}

// NewMultiSchema builds a ParameterSchema from an ordered list of fragments.
// The list and every fragment in it must be non-empty.
func NewMultiSchema(frags []Fragment) (*ParameterSchema, error) {
	if len(frags) == 0 {
		return nil, ErrEmptySchema
	}
	for i, frag := range frags {
		if len(frag) == 0 {
			return nil, fmt.Errorf("fragment %d is empty: %w", i, ErrEmptySchema)
		}
	}
	var req []string
	for _, frag := range frags {
		req = append(req, requiredKeys(frag)...)
	}
	return buildSchema(frags, true, req)
}

// schemaFromParams builds the schema for a tool's declared parameters.
// A parameter is required when it declares no default value; the required
// list preserves declaration order. Tools with no parameters get an empty
// fragment, which is valid only on this internal path.
func schemaFromParams(params []Param) (*ParameterSchema, error) {
	frag := make(Fragment, len(params))
	var required []string
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("parameter name cannot be empty: %w", ErrInvalidArgument)
		}
		req := p.Default == nil
		frag[p.Name] = Field{
			Type:        p.Type,
			Description: p.Description,
			Required:    req,
			Default:     p.Default,
		}
		if req {
			required = append(required, p.Name)
		}
	}
	return buildSchema([]Fragment{frag}, false, required)
}

func buildSchema(frags []Fragment, multi bool, required []string) (*ParameterSchema, error) {
	s := &ParameterSchema{
		fragments: frags,
		multi:     multi,
		required:  required,
	}
	for _, frag := range frags {
		compiled, err := compileFragment(frag)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema: %w", err)
		}
		s.compiled = append(s.compiled, compiled)
	}
	return s, nil
}

// AllowedKeys returns the union of parameter names across all fragments,
// sorted for deterministic output.
func (s *ParameterSchema) AllowedKeys() []string {
	seen := make(map[string]struct{})
	for _, frag := range s.fragments {
		for name := range frag {
			seen[name] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for name := range seen {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Required returns the names of parameters without default values, in
// declaration order.
func (s *ParameterSchema) Required() []string {
	out := make([]string, len(s.required))
	copy(out, s.required)
	return out
}

// String returns the canonical JSON serialization of the fragment or
// fragment list. The output is content-complete and embedded verbatim in
// prompts, so it must never be truncated.
func (s *ParameterSchema) String() string {
	var v any
	if s.multi {
		v = s.fragments
	} else {
		v = s.fragments[0]
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Validate checks the supplied arguments against the schema. For
// multi-fragment schemas the arguments are accepted when any fragment
// matches.
func (s *ParameterSchema) Validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	loader := gojsonschema.NewGoLoader(args)
	var lastErr error
	for _, compiled := range s.compiled {
		result, err := compiled.Validate(loader)
		if err != nil {
			return fmt.Errorf("schema validation: %w", err)
		}
		if result.Valid() {
			return nil
		}
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		lastErr = fmt.Errorf("%v: %w", msgs, ErrValidation)
	}
	return lastErr
}

// compileFragment turns a fragment into a JSON Schema object with
// additionalProperties disabled, mirroring what the agent is told the tool
// accepts.
func compileFragment(frag Fragment) (*gojsonschema.Schema, error) {
	properties := make(map[string]any, len(frag))
	required := make([]string, 0, len(frag))
	for name, field := range frag {
		prop := map[string]any{}
		if field.Type != "" {
			prop["type"] = field.Type
		}
		if field.Description != "" {
			prop["description"] = field.Description
		}
		if field.Default != nil {
			prop["default"] = field.Default
		}
		properties[name] = prop
		if field.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	schemaMap := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
}

func requiredKeys(frag Fragment) []string {
	var keys []string
	for name, field := range frag {
		if field.Required {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

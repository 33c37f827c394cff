package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
	TypeObject ParamType = "object"
)

// Param describes one tool parameter.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	// Default applies to omitted or non-positive numeric parameters.
	Default *float64 `json:"default,omitempty"`
	// Integer rejects numbers with a fractional part.
	Integer    bool                 `json:"integer,omitempty"`
	Enum       []string             `json:"enum,omitempty"`
	Properties map[string]ParamType `json:"properties,omitempty"`
}

// Descriptor is the static description of one tool.
type Descriptor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
}

// Registry is the immutable tool catalog.
type Registry struct {
	ordered []Descriptor
	byName  map[string]Descriptor
}

func NewRegistry(descriptors []Descriptor) *Registry {
	r := &Registry{byName: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, dup := r.byName[d.Name]; dup {
			panic(fmt.Sprintf("duplicate tool descriptor %q", d.Name))
		}
		r.ordered = append(r.ordered, d)
		r.byName[d.Name] = d
	}
	return r
}

// List returns every descriptor in catalog order.
func (r *Registry) List() []Descriptor {
	return slices.Clone(r.ordered)
}

func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ValidationError names the parameter that failed validation.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

// Validate checks args against the named tool's schema and returns a copy
// with numeric defaults applied. Unknown keys are passed through.
func (r *Registry) Validate(name string, args map[string]any) (map[string]any, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	out := make(map[string]any, len(args)+1)
	for k, v := range args {
		out[k] = v
	}
	for _, p := range d.Params {
		v, present := out[p.Name]
		if !present || v == nil {
			if p.Required {
				return nil, &ValidationError{Param: p.Name, Reason: "is required"}
			}
			if p.Default != nil {
				out[p.Name] = *p.Default
			} else {
				delete(out, p.Name)
			}
			continue
		}
		checked, err := p.check(v)
		if err != nil {
			return nil, err
		}
		out[p.Name] = checked
	}
	return out, nil
}

func (p Param) check(v any) (any, error) {
	switch p.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Param: p.Name, Reason: "must be a string"}
		}
		if p.Required && strings.TrimSpace(s) == "" {
			return nil, &ValidationError{Param: p.Name, Reason: "must not be empty"}
		}
		if len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
			return nil, &ValidationError{Param: p.Name, Reason: "must be one of " + strings.Join(p.Enum, ", ")}
		}
		return s, nil
	case TypeNumber:
		n, ok := toFloat(v)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, &ValidationError{Param: p.Name, Reason: "must be a number"}
		}
		if p.Integer && n != math.Trunc(n) {
			return nil, &ValidationError{Param: p.Name, Reason: "must be a whole number"}
		}
		if p.Default != nil && n <= 0 {
			n = *p.Default
		}
		return n, nil
	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &ValidationError{Param: p.Name, Reason: "must be an object"}
		}
		return m, nil
	}
	return v, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Tool converts the descriptor into the mcp-go tool definition advertised
// by tools/list.
func (d Descriptor) Tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Params {
		var props []mcp.PropertyOption
		if p.Description != "" {
			props = append(props, mcp.Description(p.Description))
		}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case TypeString:
			if len(p.Enum) > 0 {
				props = append(props, mcp.Enum(p.Enum...))
			}
			opts = append(opts, mcp.WithString(p.Name, props...))
		case TypeNumber:
			if p.Default != nil {
				props = append(props, mcp.DefaultNumber(*p.Default))
			}
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case TypeObject:
			if len(p.Properties) > 0 {
				schema := make(map[string]any, len(p.Properties))
				for name, t := range p.Properties {
					schema[name] = map[string]any{"type": string(t)}
				}
				props = append(props, mcp.Properties(schema))
			}
			opts = append(opts, mcp.WithObject(p.Name, props...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}

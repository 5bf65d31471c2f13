// Package generate routes model ids to the adapter that knows how to shape
// requests and read replies for that model family.
package generate

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces text for prompt with the model named by modelID.
type Generator interface {
	Generate(ctx context.Context, modelID, prompt string) (string, error)
}

// AdapterFunc lets a plain function serve as a Generator.
type AdapterFunc func(ctx context.Context, modelID, prompt string) (string, error)

func (f AdapterFunc) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	return f(ctx, modelID, prompt)
}

// Matcher reports whether a model id belongs to a family.
type Matcher func(modelID string) bool

// Prefix matches ids starting with any of prefixes.
func Prefix(prefixes ...string) Matcher {
	return func(id string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				return true
			}
		}
		return false
	}
}

// Exact matches the listed ids only.
func Exact(ids ...string) Matcher {
	return func(id string) bool {
		for _, x := range ids {
			if id == x {
				return true
			}
		}
		return false
	}
}

// AnyOf matches when any of ms matches.
func AnyOf(ms ...Matcher) Matcher {
	return func(id string) bool {
		for _, m := range ms {
			if m(id) {
				return true
			}
		}
		return false
	}
}

type route struct {
	name    string
	match   Matcher
	adapter Generator
}

// Registry is an ordered list of (matcher, adapter) routes. The first
// matching route wins; the fallback serves everything else.
type Registry struct {
	routes   []route
	fallback Generator
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a route. Earlier registrations take precedence.
func (r *Registry) Register(name string, m Matcher, a Generator) {
	r.routes = append(r.routes, route{name: name, match: m, adapter: a})
}

// SetFallback sets the adapter used when no route matches.
func (r *Registry) SetFallback(a Generator) {
	r.fallback = a
}

// Resolve returns the route name and adapter for modelID.
func (r *Registry) Resolve(modelID string) (string, Generator, error) {
	for _, rt := range r.routes {
		if rt.match(modelID) {
			return rt.name, rt.adapter, nil
		}
	}
	if r.fallback != nil {
		return "fallback", r.fallback, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrNoAdapter, modelID)
}

// Generate resolves modelID and calls its adapter. The reply is trimmed and
// any adapter failure is returned as an *UpstreamError.
func (r *Registry) Generate(ctx context.Context, modelID, prompt string) (string, error) {
	_, a, err := r.Resolve(modelID)
	if err != nil {
		return "", err
	}
	out, err := a.Generate(ctx, modelID, prompt)
	if err != nil {
		return "", &UpstreamError{Model: modelID, Err: err}
	}
	return strings.TrimSpace(out), nil
}

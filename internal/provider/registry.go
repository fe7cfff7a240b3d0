// Package provider resolves the pluggable backends (type model, annotations,
// diagnostics) used by the rest of msgtools.
//
// A Registry is built once at process start. Backend packages add themselves
// through a Register(r *Registry) function, in the order main wires them. The
// first Resolve for a capability picks an implementation, builds it and caches
// the result for the lifetime of the Registry.
package provider

import (
	"fmt"
	"log/slog"
	"sync"
)

// Capability names a pluggable backend role.
type Capability string

const (
	TypeModel   Capability = "typemodel"
	Annotations Capability = "annotations"
	Diagnostics Capability = "diagnostics"
)

// Factory builds one implementation instance.
type Factory func() (any, error)

type registration struct {
	name    string
	factory Factory
}

type slot struct {
	once  sync.Once
	value any
	err   error
}

// Registry holds registrations and resolved instances per capability.
type Registry struct {
	mu        sync.Mutex
	entries   map[Capability][]registration
	preferred map[Capability]string
	slots     map[Capability]*slot
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries:   make(map[Capability][]registration),
		preferred: make(map[Capability]string),
		slots:     make(map[Capability]*slot),
	}
}

// Register adds an implementation for c. Registering the same name twice for a
// capability panics.
func (r *Registry) Register(c Capability, name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries[c] {
		if e.name == name {
			panic(fmt.Sprintf("provider %q already registered for capability %q", name, c))
		}
	}
	slog.Debug("Registering provider.", "capability", c, "name", name)
	r.entries[c] = append(r.entries[c], registration{name: name, factory: factory})
}

// Prefer selects the implementation named name for c instead of the first
// registered one. It only has an effect before the first Resolve of c.
func (r *Registry) Prefer(c Capability, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preferred[c] = name
}

// Names lists the registered implementation names for c in registration order.
func (r *Registry) Names(c Capability) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries[c]))
	for _, e := range r.entries[c] {
		names = append(names, e.name)
	}
	return names
}

// Resolve returns the shared instance for c. Discovery and construction run
// at most once per capability; the outcome, including an error, is cached.
func (r *Registry) Resolve(c Capability) (any, error) {
	r.mu.Lock()
	s, ok := r.slots[c]
	if !ok {
		s = &slot{}
		r.slots[c] = s
	}
	r.mu.Unlock()

	s.once.Do(func() {
		s.value, s.err = r.discover(c)
	})
	return s.value, s.err
}

func (r *Registry) discover(c Capability) (any, error) {
	r.mu.Lock()
	candidates := append([]registration(nil), r.entries[c]...)
	preferred := r.preferred[c]
	r.mu.Unlock()

	if len(candidates) == 0 {
		return nil, &ServiceNotFoundError{Capability: c}
	}

	chosen := candidates[0]
	if preferred != "" {
		found := false
		for _, e := range candidates {
			if e.name == preferred {
				chosen, found = e, true
				break
			}
		}
		if !found {
			return nil, &ServiceNotFoundError{Capability: c, Name: preferred}
		}
	}

	slog.Debug("Resolving provider.", "capability", c, "name", chosen.name)
	v, err := chosen.factory()
	if err != nil {
		return nil, fmt.Errorf("provider %s/%s: %w", c, chosen.name, err)
	}
	return v, nil
}

// Get resolves c and asserts the instance to T.
func Get[T any](r *Registry, c Capability) (T, error) {
	var zero T
	v, err := r.Resolve(c)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("provider for %q has unexpected type %T", c, v)
	}
	return t, nil
}

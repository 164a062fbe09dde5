package generate

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry maps platform names to generator providers, so callers can
// resolve targets by the names carried in world metadata.
type Registry struct {
	mu        sync.Mutex
	providers map[string]func() Generator
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]func() Generator),
	}
}

// DefaultRegistry returns a registry with the three built-in targets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Set("unity", func() Generator { return NewUnityGenerator() })
	r.Set("unreal", func() Generator { return NewUnrealGenerator() })
	r.Set("horizon", func() Generator { return NewHorizonGenerator() })
	return r
}

func (r *Registry) Set(name string, provider func() Generator) {
	r.mu.Lock()
	r.providers[name] = provider
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Generator, error) {
	r.mu.Lock()
	provider, ok := r.providers[name]
	r.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("unknown target platform: %s", name)
	}
	return provider(), nil
}

// Platforms lists registered platform names, sorted.
func (r *Registry) Platforms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package dispatch

import (
	"github.com/devicedash/devicedash/internal/shared/types"
)

// UnknownKey is the designated fallback dispatch key. Descriptors persisted
// by a newer or older app version may carry keys this version does not
// ship; they resolve to the Unknown placeholder instead of failing.
const UnknownKey = "unknown"

// Factory produces the feature definition for one dispatch key.
type Factory func() types.FeatureDefinition

// Registry maps dispatch keys to feature factories. It is populated once at
// startup, holds no other state, and performs no I/O: Resolve is a
// deterministic lookup.
type Registry struct {
	factories map[string]Factory
	fallback  Factory
}

// NewRegistry creates a registry with the Unknown placeholder installed.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		fallback: func() types.FeatureDefinition {
			return types.FeatureDefinition{
				Key:   UnknownKey,
				Title: "Unknown Module",
				Icon:  "help",
			}
		},
	}
}

// Register installs a factory for a dispatch key. The last registration for
// a key wins; startup code registers each shipped key exactly once.
func (r *Registry) Register(key string, factory Factory) {
	if key == "" || factory == nil {
		return
	}
	r.factories[key] = factory
}

// Resolve returns the feature for a dispatch key, or the Unknown
// placeholder for keys this version does not recognize. It never fails:
// every enabled descriptor in persisted storage yields a renderable item
// regardless of version skew.
func (r *Registry) Resolve(key string) types.FeatureDefinition {
	if factory, ok := r.factories[key]; ok {
		return factory()
	}
	return r.fallback()
}

// Known reports whether a dispatch key resolves to a shipped feature.
func (r *Registry) Known(key string) bool {
	_, ok := r.factories[key]
	return ok
}

// Keys returns all registered dispatch keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	return keys
}

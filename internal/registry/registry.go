// Package registry provides a global registry for control policy factories.
// Policies register themselves in init() functions, allowing the CLI and the
// viewer to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/sim"
)

// ErrUnknownPolicy is returned by Create for an unregistered ID.
var ErrUnknownPolicy = errors.New("registry: unknown policy")

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh policy instance for one run.
type Factory func(cfg config.CrossingConfig) sim.Policy

type entry struct {
	info    PolicyInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a policy factory to the registry.
// Typically called from a policy's init() function.
// Panics if a policy with the same ID is already registered.
func Register(info PolicyInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered policies, sorted by ID.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new policy by its ID. The policy reports the ID
// as its name.
func Create(id string, cfg config.CrossingConfig) (sim.Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, id)
	}

	return sim.Named(id, e.factory(cfg)), nil
}

// Exists checks if a policy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

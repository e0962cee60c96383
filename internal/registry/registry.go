// Package registry provides a global registry for stage packs.
// Packs register themselves in init() functions, allowing the platform
// to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// Pack is a named, ordered collection of stages.
type Pack interface {
	stage.TileSource

	// Title returns a human-readable name for display (e.g., "Classic").
	Title() string
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory loads a pack.
type Factory func() (Pack, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry under id with a display
// title. Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}
	factories[id] = f
	titles[id] = title
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create loads a pack by its ID.
func Create(id string) (Pack, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}
	p, err := f()
	if err != nil {
		return nil, fmt.Errorf("registry: load pack %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

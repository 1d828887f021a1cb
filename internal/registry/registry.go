// Package registry provides a global registry for chart series factories.
// Series register themselves in init() functions, allowing the platform
// to discover and instantiate data sources without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Series is a data source plotted on the brush stage.
type Series interface {
	// ID returns a unique identifier (e.g., "sine", "walk").
	// Used for CLI flags, config, and selection history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Sample returns n values. The same seed must give the same values.
	Sample(n int, seed int64) []float64
}

// SeriesInfo contains metadata about a registered series.
type SeriesInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new series instance.
type Factory func() Series

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a series factory to the registry.
// Panics if a series with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: series %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered series, sorted by ID.
func List() []SeriesInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SeriesInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SeriesInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a series by its ID.
func Create(id string) (Series, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown series %q", id)
	}

	return f(), nil
}

// Exists checks if a series with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

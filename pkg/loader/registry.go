package loader

import (
	"maps"
	"slices"
	"strings"
)

// Registry maps format names to loaders. It is created explicitly at
// startup, there is no global registry.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates a registry from the given loaders. A later loader
// replaces an earlier one with the same format.
func NewRegistry(ls ...Loader) *Registry {
	res := &Registry{loaders: make(map[string]Loader)}
	for _, l := range ls {
		res.Register(l)
	}
	return res
}

// Register adds a loader variant to the registry.
func (r *Registry) Register(l Loader) {
	if l == nil {
		return
	}
	r.loaders[strings.ToLower(l.Format())] = l
}

// Get returns the loader for the format. Unknown formats result in
// UnsupportedFormatError that lists supported formats.
func (r *Registry) Get(format string) (Loader, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if l, ok := r.loaders[f]; ok {
		return l, nil
	}
	return nil, UnsupportedFormatError(format, r.Formats())
}

// Formats returns sorted names of supported formats.
func (r *Registry) Formats() []string {
	return slices.Sorted(maps.Keys(r.loaders))
}

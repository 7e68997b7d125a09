package site

import (
	"sort"
	"strings"
	"sync"
)

// Registry tracks registered pages, hidden paths, and component markers. It is
// safe for concurrent use; page handlers read it on every request while the
// host application may still be registering pages.
type Registry struct {
	mu               sync.RWMutex
	pages            map[string]Page
	hiddenPaths      map[string]struct{}
	importantIDs     map[string]struct{}
	hiddenComponents map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		pages:            make(map[string]Page),
		hiddenPaths:      make(map[string]struct{}),
		importantIDs:     make(map[string]struct{}),
		hiddenComponents: make(map[string]struct{}),
	}
}

// Register adds a page to the registry. The last registration for a given
// path wins. Paths are normalized to begin with "/".
func (r *Registry) Register(p Page) {
	p.Path = normalizePath(p.Path)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[p.Path] = p
}

// Lookup returns the page registered at path.
func (r *Registry) Lookup(path string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[normalizePath(path)]
	return p, ok
}

// Pages returns all registered pages sorted by path.
func (r *Registry) Pages() []Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// VisiblePages returns registered pages that are not hidden, sorted by path.
func (r *Registry) VisiblePages() []Page {
	all := r.Pages()
	out := make([]Page, 0, len(all))
	for _, p := range all {
		if !r.IsHidden(p.Path) {
			out = append(out, p)
		}
	}
	return out
}

// MarkHidden excludes a path from sitemaps, robots listings, and the
// documentation routes.
func (r *Registry) MarkHidden(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hiddenPaths[normalizePath(path)] = struct{}{}
}

// IsHidden reports whether the path was marked hidden.
func (r *Registry) IsHidden(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.hiddenPaths[normalizePath(path)]
	return ok
}

// HiddenPaths returns all hidden paths sorted lexically.
func (r *Registry) HiddenPaths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.hiddenPaths))
	for p := range r.hiddenPaths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// MarkImportant flags a component ID so extraction surfaces its subtree
// prominently in generated documentation.
func (r *Registry) MarkImportant(componentID string) {
	if componentID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.importantIDs[componentID] = struct{}{}
}

// IsImportant reports whether the component ID was marked important.
func (r *Registry) IsImportant(componentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.importantIDs[componentID]
	return ok
}

// MarkComponentHidden excludes a component subtree from text extraction and
// architecture output.
func (r *Registry) MarkComponentHidden(componentID string) {
	if componentID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hiddenComponents[componentID] = struct{}{}
}

// IsComponentHidden reports whether the component ID was marked hidden.
func (r *Registry) IsComponentHidden(componentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.hiddenComponents[componentID]
	return ok
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

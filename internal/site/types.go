// Package site defines the page tree model shared by the generators and the
// HTTP layer.
package site

import "time"

// Page describes a single routable page in the host application.
type Page struct {
	// Path is the page route, always beginning with "/".
	Path string
	// Name is the human-readable page title.
	Name string
	// Description summarizes the page for documentation artifacts.
	Description string
	// Extra carries arbitrary additional metadata fields.
	Extra map[string]string
	// Layout optionally produces the page's component tree on demand.
	Layout func() *Component
}

// Component is one node in a page's layout tree.
type Component struct {
	Type     string
	ID       string
	Text     string
	Children []*Component
}

// Clock abstracts time for deterministic artifact generation in tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces unique identifiers for visit records and requests.
type IDGenerator interface {
	NewID() (string, error)
}

package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/atlasdocs/siteatlas/internal/site"
)

// AppInfo describes the host application for documentation artifacts.
type AppInfo struct {
	Name        string
	Description string
	BaseURL     string
}

// PageJSON is the machine-readable architecture document for one page.
type PageJSON struct {
	Path         string         `json:"path"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Architecture *ArchNode      `json:"architecture"`
	Components   ComponentStats `json:"components"`
	Metadata     PageMetadata   `json:"metadata"`
}

// ComponentStats summarizes a page's component tree.
type ComponentStats struct {
	Counts ComponentCounts `json:"counts"`
	Depth  int             `json:"depth"`
}

// ComponentCounts breaks down extracted components.
type ComponentCounts struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// PageMetadata carries descriptive fields alongside the architecture.
type PageMetadata struct {
	ComponentTypes []string          `json:"component_types"`
	GeneratedAt    string            `json:"generated_at"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// GenerateLLMSText renders the markdown llms.txt document for a page. Pages
// without a layout still get a valid document with metadata and context.
func GenerateLLMSText(page site.Page, app AppInfo, pages []site.Page, m Markers) string {
	var b strings.Builder

	name := page.Name
	if name == "" {
		name = page.Path
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	if page.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", page.Description)
	}
	fmt.Fprintf(&b, "Path: %s\n\n", page.Path)

	b.WriteString("## Key Content\n\n")
	texts := pageTexts(page, m)
	if len(texts) == 0 {
		b.WriteString("No extractable content registered for this page.\n\n")
	} else {
		// Important lines first, original order otherwise preserved.
		for _, t := range texts {
			if strings.HasPrefix(t, "[IMPORTANT]") {
				fmt.Fprintf(&b, "- %s\n", t)
			}
		}
		for _, t := range texts {
			if !strings.HasPrefix(t, "[IMPORTANT]") {
				fmt.Fprintf(&b, "- %s\n", t)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Application Context\n\n")
	if app.Name != "" {
		fmt.Fprintf(&b, "This page is part of %s", app.Name)
		if app.Description != "" {
			fmt.Fprintf(&b, ": %s", app.Description)
		}
		b.WriteString("\n\n")
	}
	if len(pages) > 0 {
		b.WriteString("Pages:\n")
		for _, p := range pages {
			if p.Description != "" {
				fmt.Fprintf(&b, "- %s (%s): %s\n", p.Name, p.Path, p.Description)
			} else {
				fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Path)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("Related resources:\n")
	fmt.Fprintf(&b, "- %s/page.json (component architecture for this page)\n", strings.TrimSuffix(page.Path, "/"))
	b.WriteString("- /architecture.txt (application overview)\n")
	b.WriteString("- /sitemap.xml (all pages)\n")

	return b.String()
}

// GeneratePageJSON builds the page.json document for a page.
func GeneratePageJSON(page site.Page, m Markers, maxDepth int, now time.Time) PageJSON {
	var arch *ArchNode
	if page.Layout != nil {
		arch = ExtractArchitecture(page.Layout(), m, maxDepth)
	}
	counts := CountTypes(arch)
	return PageJSON{
		Path:         page.Path,
		Name:         page.Name,
		Description:  page.Description,
		Architecture: arch,
		Components: ComponentStats{
			Counts: ComponentCounts{Total: CountTotal(arch), ByType: counts},
			Depth:  Depth(arch),
		},
		Metadata: PageMetadata{
			ComponentTypes: sortedTypes(counts),
			GeneratedAt:    now.UTC().Format(time.RFC3339),
			Extra:          page.Extra,
		},
	}
}

// GenerateArchitectureText renders the plain-text application overview served
// at /architecture.txt.
func GenerateArchitectureText(app AppInfo, pages []site.Page, m Markers, maxDepth int) string {
	var b strings.Builder

	name := app.Name
	if name == "" {
		name = "Application"
	}
	fmt.Fprintf(&b, "%s\n%s\n\n", name, strings.Repeat("=", len(name)))
	if app.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", app.Description)
	}
	fmt.Fprintf(&b, "Pages: %d\n\n", len(pages))

	for _, p := range pages {
		fmt.Fprintf(&b, "%s (%s)\n", p.Name, p.Path)
		if p.Description != "" {
			fmt.Fprintf(&b, "  %s\n", p.Description)
		}
		if p.Layout != nil {
			arch := ExtractArchitecture(p.Layout(), m, maxDepth)
			fmt.Fprintf(&b, "  components: %d, depth: %d\n", CountTotal(arch), Depth(arch))
			types := CountTypes(arch)
			if len(types) > 0 {
				parts := make([]string, 0, len(types))
				for _, t := range sortedTypes(types) {
					parts = append(parts, fmt.Sprintf("%s=%d", t, types[t]))
				}
				fmt.Fprintf(&b, "  types: %s\n", strings.Join(parts, ", "))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("Machine-readable resources:\n")
	b.WriteString("- /llms.txt and /<page>/llms.txt (markdown page docs)\n")
	b.WriteString("- /page.json and /<page>/page.json (component architecture)\n")
	b.WriteString("- /sitemap.xml (page index)\n")
	return b.String()
}

func pageTexts(page site.Page, m Markers) []string {
	if page.Layout == nil {
		return nil
	}
	return ExtractText(page.Layout(), m)
}

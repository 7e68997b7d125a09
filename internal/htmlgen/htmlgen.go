// Package htmlgen renders crawler-friendly static HTML: a per-page fallback
// document and the application index shell.
package htmlgen

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/atlasdocs/siteatlas/internal/docs"
	"github.com/atlasdocs/siteatlas/internal/site"
)

// Section is a trusted HTML snippet captured from an important component,
// keyed to the page it belongs to.
type Section struct {
	PagePath string
	ID       string
	HTML     string
}

type jsonLDWebApplication struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type jsonLDNavigation struct {
	Context string       `json:"@context"`
	Type    string       `json:"@type"`
	Name    string       `json:"name"`
	HasPart []jsonLDPage `json:"hasPart,omitempty"`
}

type jsonLDPage struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

const styleBlock = `  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; color: #1a1a1a; }
    nav a { margin-right: 1rem; }
    nav a.current { font-weight: bold; text-decoration: none; }
    footer { margin-top: 3rem; border-top: 1px solid #ddd; padding-top: 1rem; color: #666; font-size: 0.9rem; }
  </style>
`

// GeneratePageHTML renders the static fallback document for one page. The
// sections' HTML is trusted and injected verbatim; all metadata fields are
// escaped.
func GeneratePageHTML(page site.Page, allPages []site.Page, app docs.AppInfo, sections []Section) string {
	var b strings.Builder
	name := page.Name
	if name == "" {
		name = page.Path
	}
	pathPrefix := strings.TrimSuffix(page.Path, "/")

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "  <meta name=\"description\" content=\"%s\">\n", html.EscapeString(page.Description))
	b.WriteString("  <meta name=\"robots\" content=\"index, follow\">\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(name))
	fmt.Fprintf(&b, "  <link rel=\"alternate\" type=\"text/markdown\" href=\"%s/llms.txt\">\n", pathPrefix)
	fmt.Fprintf(&b, "  <link rel=\"alternate\" type=\"application/json\" href=\"%s/page.json\">\n", pathPrefix)
	writeJSONLD(&b, jsonLDWebApplication{
		Context:     "https://schema.org",
		Type:        "WebApplication",
		Name:        app.Name,
		Description: app.Description,
		URL:         app.BaseURL,
	})
	b.WriteString(styleBlock)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("  <nav>\n")
	for _, p := range allPages {
		cls := ""
		if p.Path == page.Path {
			cls = ` class="current"`
		}
		fmt.Fprintf(&b, "    <a href=\"%s\"%s>%s</a>\n", p.Path, cls, html.EscapeString(p.Name))
	}
	b.WriteString("  </nav>\n")

	b.WriteString("  <main>\n")
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", html.EscapeString(name))
	if page.Description != "" {
		fmt.Fprintf(&b, "    <p>%s</p>\n", html.EscapeString(page.Description))
	}
	for _, s := range sections {
		if s.PagePath != page.Path {
			continue
		}
		fmt.Fprintf(&b, "    <section id=\"%s\">\n%s\n    </section>\n", html.EscapeString(s.ID), s.HTML)
	}
	b.WriteString("    <p>The interactive version of this page requires JavaScript.</p>\n")
	b.WriteString("  </main>\n")

	b.WriteString("  <aside>\n    <h2>Note for AI Agents</h2>\n")
	fmt.Fprintf(&b, "    <p>Machine-readable documentation is available at %s/llms.txt, /architecture.txt, and %s/page.json.</p>\n",
		pathPrefix, pathPrefix)
	b.WriteString("  </aside>\n")

	b.WriteString("  <footer>\n    <p>Static fallback generated by siteatlas.</p>\n  </footer>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// GenerateIndexHTML renders the application shell served at the site root:
// Open Graph tags, structured data, discovery links, and a noscript page
// index around an empty mount point for the client application.
func GenerateIndexHTML(app docs.AppInfo, pages []site.Page) string {
	var b strings.Builder
	name := app.Name
	if name == "" {
		name = "Application"
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "  <meta name=\"description\" content=\"%s\">\n", html.EscapeString(app.Description))
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(name))
	b.WriteString("  <meta property=\"og:type\" content=\"website\">\n")
	fmt.Fprintf(&b, "  <meta property=\"og:title\" content=\"%s\">\n", html.EscapeString(name))
	fmt.Fprintf(&b, "  <meta property=\"og:description\" content=\"%s\">\n", html.EscapeString(app.Description))
	b.WriteString("  <link rel=\"alternate\" type=\"text/markdown\" href=\"/llms.txt\">\n")
	b.WriteString("  <link rel=\"sitemap\" type=\"application/xml\" href=\"/sitemap.xml\">\n")

	writeJSONLD(&b, jsonLDWebApplication{
		Context:     "https://schema.org",
		Type:        "WebApplication",
		Name:        app.Name,
		Description: app.Description,
		URL:         app.BaseURL,
	})
	nav := jsonLDNavigation{
		Context: "https://schema.org",
		Type:    "SiteNavigationElement",
		Name:    "Main Navigation",
	}
	base := strings.TrimSuffix(app.BaseURL, "/")
	for _, p := range pages {
		nav.HasPart = append(nav.HasPart, jsonLDPage{
			Type:        "WebPage",
			Name:        p.Name,
			URL:         base + p.Path,
			Description: p.Description,
		})
	}
	writeJSONLD(&b, nav)
	b.WriteString(styleBlock)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("  <div id=\"app\"></div>\n")

	b.WriteString("  <noscript>\n")
	fmt.Fprintf(&b, "    <h1>%s</h1>\n", html.EscapeString(name))
	b.WriteString("    <p>This application requires JavaScript. The following pages are available:</p>\n    <ul>\n")
	for _, p := range pages {
		if p.Description != "" {
			fmt.Fprintf(&b, "      <li><a href=\"%s\">%s</a> - %s</li>\n",
				p.Path, html.EscapeString(p.Name), html.EscapeString(p.Description))
		} else {
			fmt.Fprintf(&b, "      <li><a href=\"%s\">%s</a></li>\n", p.Path, html.EscapeString(p.Name))
		}
	}
	b.WriteString("    </ul>\n  </noscript>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeJSONLD(b *strings.Builder, payload any) {
	raw, err := json.MarshalIndent(payload, "  ", "  ")
	if err != nil {
		return
	}
	b.WriteString("  <script type=\"application/ld+json\">\n  ")
	b.Write(raw)
	b.WriteString("\n  </script>\n")
}

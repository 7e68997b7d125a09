package htmlgen

import (
	"fmt"
	"html"
	"strings"

	"github.com/atlasdocs/siteatlas/internal/site"
)

const maxRenderDepth = 20

var knownTags = map[string]string{
	"Div":  "div",
	"Span": "span",
	"P":    "p",
	"H1":   "h1",
	"H2":   "h2",
	"H3":   "h3",
	"H4":   "h4",
	"H5":   "h5",
	"H6":   "h6",
	"Ul":   "ul",
	"Ol":   "ol",
	"Li":   "li",
	"A":    "a",
}

// RenderComponent converts a component subtree into static HTML. Text content
// is escaped; unknown component types render as div.
func RenderComponent(c *site.Component) string {
	var b strings.Builder
	renderNode(&b, c, maxRenderDepth)
	return b.String()
}

func renderNode(b *strings.Builder, c *site.Component, remaining int) {
	if c == nil || remaining <= 0 {
		return
	}
	tag, ok := knownTags[c.Type]
	if !ok {
		tag = "div"
	}
	if c.ID != "" {
		fmt.Fprintf(b, "<%s id=%q>", tag, c.ID)
	} else {
		fmt.Fprintf(b, "<%s>", tag)
	}
	if c.Text != "" {
		b.WriteString(html.EscapeString(c.Text))
	}
	for _, child := range c.Children {
		renderNode(b, child, remaining-1)
	}
	fmt.Fprintf(b, "</%s>", tag)
}

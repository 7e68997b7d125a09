package htmlgen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/atlasdocs/siteatlas/internal/docs"
	"github.com/atlasdocs/siteatlas/internal/site"
)

var testApp = docs.AppInfo{
	Name:        "Sales Dashboard",
	Description: "Interactive sales analytics",
	BaseURL:     "https://example.com",
}

var testPages = []site.Page{
	{Path: "/", Name: "Home", Description: "Landing page"},
	{Path: "/dashboard", Name: "Dashboard", Description: "Live sales metrics"},
	{Path: "/about", Name: "About"},
}

func parseDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestGeneratePageHTML_HeadMetadata(t *testing.T) {
	t.Parallel()

	out := GeneratePageHTML(testPages[1], testPages, testApp, nil)
	doc := parseDoc(t, out)

	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Equal(t, "Dashboard", doc.Find("title").Text())

	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	require.Equal(t, "Live sales metrics", desc)

	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "index, follow", robots)

	llms, _ := doc.Find(`link[type="text/markdown"]`).Attr("href")
	require.Equal(t, "/dashboard/llms.txt", llms)

	pageJSON, _ := doc.Find(`link[type="application/json"]`).Attr("href")
	require.Equal(t, "/dashboard/page.json", pageJSON)
}

func TestGeneratePageHTML_NavMarksCurrentPage(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, GeneratePageHTML(testPages[1], testPages, testApp, nil))

	links := doc.Find("nav a")
	require.Equal(t, 3, links.Length())

	current := doc.Find("nav a.current")
	require.Equal(t, 1, current.Length())
	href, _ := current.Attr("href")
	require.Equal(t, "/dashboard", href)
}

func TestGeneratePageHTML_InjectsMatchingSections(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{PagePath: "/dashboard", ID: "main-content", HTML: "<p>Revenue is up 12%</p>"},
		{PagePath: "/about", ID: "other", HTML: "<p>elsewhere</p>"},
	}
	out := GeneratePageHTML(testPages[1], testPages, testApp, sections)
	doc := parseDoc(t, out)

	require.Equal(t, 1, doc.Find("main section").Length())
	sec := doc.Find(`section[id="main-content"]`)
	require.Equal(t, 1, sec.Length())
	require.Contains(t, sec.Text(), "Revenue is up 12%")
	require.NotContains(t, out, "elsewhere")
}

func TestGeneratePageHTML_JSONLDIsValid(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, GeneratePageHTML(testPages[0], testPages, testApp, nil))

	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, "https://schema.org", payload["@context"])
	require.Equal(t, "WebApplication", payload["@type"])
	require.Equal(t, "Sales Dashboard", payload["name"])
}

func TestGeneratePageHTML_EscapesMetadata(t *testing.T) {
	t.Parallel()

	page := site.Page{Path: "/x", Name: `<script>alert("x")</script>`, Description: "a & b"}
	out := GeneratePageHTML(page, []site.Page{page}, testApp, nil)

	require.NotContains(t, out, `<script>alert`)
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, "a &amp; b")
}

func TestGeneratePageHTML_AgentNote(t *testing.T) {
	t.Parallel()

	out := GeneratePageHTML(testPages[1], testPages, testApp, nil)
	require.Contains(t, out, "Note for AI Agents")
	require.Contains(t, out, "/dashboard/llms.txt")
	require.Contains(t, out, "/architecture.txt")
	require.Contains(t, out, "requires JavaScript")
}

func TestGenerateIndexHTML_OpenGraphAndLinks(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, GenerateIndexHTML(testApp, testPages))

	ogType, _ := doc.Find(`meta[property="og:type"]`).Attr("content")
	require.Equal(t, "website", ogType)
	ogTitle, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	require.Equal(t, "Sales Dashboard", ogTitle)

	sitemap, _ := doc.Find(`link[rel="sitemap"]`).Attr("href")
	require.Equal(t, "/sitemap.xml", sitemap)
	llms, _ := doc.Find(`link[type="text/markdown"]`).Attr("href")
	require.Equal(t, "/llms.txt", llms)
}

func TestGenerateIndexHTML_NavigationStructuredData(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, GenerateIndexHTML(testApp, testPages))

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 2, scripts.Length())

	var nav map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts.Eq(1).Text()), &nav))
	require.Equal(t, "SiteNavigationElement", nav["@type"])
	require.Equal(t, "Main Navigation", nav["name"])

	parts, ok := nav["hasPart"].([]any)
	require.True(t, ok)
	require.Len(t, parts, 3)
	first := parts[0].(map[string]any)
	require.Equal(t, "https://example.com/", first["url"])
}

func TestGenerateIndexHTML_NoscriptListsPages(t *testing.T) {
	t.Parallel()

	out := GenerateIndexHTML(testApp, testPages)

	require.Contains(t, out, "<noscript>")
	require.Contains(t, out, `<a href="/dashboard">Dashboard</a> - Live sales metrics`)
	require.Contains(t, out, `<a href="/about">About</a></li>`)
	require.Contains(t, out, `<div id="app"></div>`)
}

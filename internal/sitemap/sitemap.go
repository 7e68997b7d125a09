// Package sitemap renders sitemap protocol XML for an application's visible
// page tree, inferring crawl hints from page paths.
package sitemap

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/atlasdocs/siteatlas/internal/site"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Frequency is a sitemap changefreq value.
type Frequency string

// Sitemap protocol change frequencies.
const (
	FreqAlways  Frequency = "always"
	FreqHourly  Frequency = "hourly"
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
	FreqNever   Frequency = "never"
)

// Entry is a single sitemap <url> element. Changefreq and Priority are
// omitted from the XML when left at their zero values.
type Entry struct {
	Loc        string
	Lastmod    string
	Changefreq Frequency
	Priority   float64
}

// NewEntry builds an Entry with the stock defaults: lastmod today, weekly
// change frequency, 0.5 priority.
func NewEntry(loc string, now time.Time) Entry {
	return Entry{
		Loc:        loc,
		Lastmod:    now.Format("2006-01-02"),
		Changefreq: FreqWeekly,
		Priority:   0.5,
	}
}

func (e Entry) appendTo(urlset *etree.Element, now time.Time) {
	url := urlset.CreateElement("url")
	url.CreateElement("loc").SetText(e.Loc)
	lastmod := e.Lastmod
	if lastmod == "" {
		lastmod = now.Format("2006-01-02")
	}
	url.CreateElement("lastmod").SetText(lastmod)
	if e.Changefreq != "" {
		url.CreateElement("changefreq").SetText(string(e.Changefreq))
	}
	if e.Priority > 0 {
		url.CreateElement("priority").SetText(strconv.FormatFloat(e.Priority, 'f', 1, 64))
	}
}

// InferPriority maps a page path to a sitemap priority. The homepage is
// always 1.0; other paths are ranked by keyword, falling back to 0.5.
func InferPriority(path string) float64 {
	if path == "/" {
		return 1.0
	}
	p := strings.ToLower(path)
	switch {
	case containsAny(p, "dashboard", "main", "overview"):
		return 0.9
	case containsAny(p, "report", "analytics", "data"):
		return 0.8
	case containsAny(p, "docs", "help", "api", "about"):
		return 0.7
	default:
		return 0.5
	}
}

// InferChangeFrequency maps a page path to a change frequency hint.
func InferChangeFrequency(path string) Frequency {
	p := strings.ToLower(path)
	switch {
	case containsAny(p, "dashboard", "live", "real-time"):
		return FreqDaily
	case containsAny(p, "report", "analytics"):
		return FreqWeekly
	case containsAny(p, "docs", "help", "api"):
		return FreqMonthly
	case containsAny(p, "about", "contact", "terms"):
		return FreqYearly
	default:
		return FreqWeekly
	}
}

// Options adjusts sitemap generation.
type Options struct {
	// IsHidden excludes matching page paths from the output.
	IsHidden func(path string) bool
	// CustomEntries are merged with the page entries before sorting.
	CustomEntries []Entry
	// Clock supplies lastmod dates; defaults to the system clock.
	Clock site.Clock
}

// Generate renders a sitemap for the pages. Entries are sorted by descending
// priority (stable); an empty page list still yields a well-formed document.
func Generate(pages []site.Page, baseURL string, opts Options) (string, error) {
	now := time.Now()
	if opts.Clock != nil {
		now = opts.Clock.Now()
	}
	base := strings.TrimSuffix(baseURL, "/")

	entries := make([]Entry, 0, len(pages)+len(opts.CustomEntries))
	for _, p := range pages {
		if opts.IsHidden != nil && opts.IsHidden(p.Path) {
			continue
		}
		entries = append(entries, Entry{
			Loc:        base + p.Path,
			Lastmod:    now.Format("2006-01-02"),
			Changefreq: InferChangeFrequency(p.Path),
			Priority:   InferPriority(p.Path),
		})
	}
	entries = append(entries, opts.CustomEntries...)

	sort.SliceStable(entries, func(i, j int) bool {
		return effectivePriority(entries[i]) > effectivePriority(entries[j])
	})

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", xmlns)
	for _, e := range entries {
		e.appendTo(urlset, now)
	}
	doc.Indent(2)
	return doc.WriteToString()
}

func effectivePriority(e Entry) float64 {
	if e.Priority > 0 {
		return e.Priority
	}
	return 0.5
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

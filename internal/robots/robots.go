// Package robots renders robots.txt documents from a crawler access policy.
package robots

import (
	"fmt"
	"strings"

	"github.com/atlasdocs/siteatlas/internal/bots"
)

// Config is the crawler access policy applied when rendering robots.txt.
// The zero value is not useful; use DefaultConfig for the stock policy.
type Config struct {
	// BlockAITraining emits a Disallow-all block per known AI training bot.
	BlockAITraining bool
	// AllowAISearch emits an Allow-all block per known AI search bot.
	AllowAISearch bool
	// AllowTraditional emits an Allow-all block per traditional search bot.
	AllowTraditional bool
	// CrawlDelay in seconds, omitted when zero.
	CrawlDelay int
	// CustomRules are raw lines appended verbatim, in order.
	CustomRules []string
	// DisallowedPaths are path prefixes disallowed for all crawlers.
	DisallowedPaths []string
}

// DefaultConfig blocks AI training crawlers and allows everything else.
func DefaultConfig() Config {
	return Config{
		BlockAITraining:  true,
		AllowAISearch:    true,
		AllowTraditional: true,
	}
}

// Generate renders a robots.txt document for the policy. sitemapURL is the
// absolute sitemap location, baseURL the site root used for documentation
// links. The output always contains exactly one Sitemap line.
func Generate(cfg Config, sitemapURL, baseURL string) string {
	base := strings.TrimSuffix(baseURL, "/")
	var b strings.Builder

	b.WriteString("# robots.txt generated by siteatlas\n")
	b.WriteString("# Machine-readable documentation for AI agents:\n")
	fmt.Fprintf(&b, "#   %s/llms.txt\n", base)
	fmt.Fprintf(&b, "#   %s/architecture.txt\n", base)
	fmt.Fprintf(&b, "#   %s/page.json\n", base)
	b.WriteString("\n")

	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, path := range cfg.DisallowedPaths {
		if path = strings.TrimSpace(path); path != "" {
			fmt.Fprintf(&b, "Disallow: %s\n", path)
		}
	}
	if cfg.CrawlDelay > 0 {
		fmt.Fprintf(&b, "Crawl-delay: %d\n", cfg.CrawlDelay)
	}
	b.WriteString("\n")

	if cfg.BlockAITraining {
		b.WriteString("# AI training bots\n")
		for _, bot := range bots.TrainingBots() {
			fmt.Fprintf(&b, "User-agent: %s\nDisallow: /\n\n", bot.Name)
		}
	}
	if cfg.AllowAISearch {
		b.WriteString("# AI search bots\n")
		for _, bot := range bots.SearchBots() {
			fmt.Fprintf(&b, "User-agent: %s\nAllow: /\n\n", bot.Name)
		}
	}
	if cfg.AllowTraditional {
		b.WriteString("# Traditional search bots\n")
		for _, bot := range bots.TraditionalBots() {
			fmt.Fprintf(&b, "User-agent: %s\nAllow: /\n\n", bot.Name)
		}
	}

	if len(cfg.CustomRules) > 0 {
		b.WriteString("# Custom rules\n")
		for _, rule := range cfg.CustomRules {
			b.WriteString(rule)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Sitemap: %s\n", sitemapURL)
	return b.String()
}

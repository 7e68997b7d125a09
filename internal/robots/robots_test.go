package robots

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/temoto/robotstxt"
)

func TestGenerate_DefaultPolicy(t *testing.T) {
	t.Parallel()

	content := Generate(DefaultConfig(), "https://example.com/sitemap.xml", "https://example.com")

	require.True(t, strings.HasPrefix(content, "#"))
	require.Contains(t, content, "User-agent: *\nAllow: /")
	require.Contains(t, content, "Sitemap: https://example.com/sitemap.xml")

	for _, name := range []string{"GPTBot", "anthropic-ai", "Claude-Web", "CCBot", "Google-Extended", "FacebookBot", "ByteSpider"} {
		require.Contains(t, content, "User-agent: "+name+"\nDisallow: /", "bot %s", name)
	}
}

func TestGenerate_AllowAll(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BlockAITraining = false
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "User-agent: *\nAllow: /")
	require.NotContains(t, content, "User-agent: GPTBot\nDisallow: /")
	require.NotContains(t, content, "User-agent: anthropic-ai\nDisallow: /")
}

func TestGenerate_CrawlDelay(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CrawlDelay = 10
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "Crawl-delay: 10")
}

func TestGenerate_DisallowedPaths(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DisallowedPaths = []string{"/admin", "/api", "/private"}
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "Disallow: /admin")
	require.Contains(t, content, "Disallow: /api")
	require.Contains(t, content, "Disallow: /private")
}

func TestGenerate_CustomRules(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CustomRules = []string{"User-agent: MyBot", "Allow: /special", "Disallow: /no-mybot"}
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "User-agent: MyBot")
	require.Contains(t, content, "Allow: /special")
	require.Contains(t, content, "Disallow: /no-mybot")
}

func TestGenerate_SearchBotsListed(t *testing.T) {
	t.Parallel()

	content := Generate(DefaultConfig(), "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "User-agent: ChatGPT-User")
	require.Contains(t, content, "User-agent: ClaudeBot")
	require.Contains(t, content, "User-agent: PerplexityBot")
	require.NotContains(t, content, "User-agent: ClaudeBot\nDisallow: /")
}

func TestGenerate_DocumentationLinks(t *testing.T) {
	t.Parallel()

	content := Generate(DefaultConfig(), "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "https://example.com/llms.txt")
	require.Contains(t, content, "https://example.com/architecture.txt")
	require.Contains(t, content, "https://example.com/page.json")
}

func TestGenerate_ExactlyOneSitemapLine(t *testing.T) {
	t.Parallel()

	content := Generate(DefaultConfig(), "https://myapp.com/sitemap.xml", "https://myapp.com")

	require.Equal(t, 1, strings.Count(content, "Sitemap:"))
	require.Contains(t, content, "Sitemap: https://myapp.com/sitemap.xml")
}

func TestGenerate_CombinedPolicy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CrawlDelay = 15
	cfg.DisallowedPaths = []string{"/admin", "/settings"}
	cfg.CustomRules = []string{"User-agent: SpecialBot", "Allow: /special"}
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	require.Contains(t, content, "Crawl-delay: 15")
	require.Contains(t, content, "Disallow: /admin")
	require.Contains(t, content, "User-agent: SpecialBot")
	require.Contains(t, content, "User-agent: GPTBot")
	require.Contains(t, content, "Sitemap: https://example.com/sitemap.xml")
}

func TestGenerate_ParsesAsValidRobotsTxt(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DisallowedPaths = []string{"/admin"}
	content := Generate(cfg, "https://example.com/sitemap.xml", "https://example.com")

	data, err := robotstxt.FromString(content)
	require.NoError(t, err)

	require.False(t, data.TestAgent("/", "GPTBot"))
	require.False(t, data.TestAgent("/equipment", "CCBot"))
	require.True(t, data.TestAgent("/", "ClaudeBot"))
	require.True(t, data.TestAgent("/", "Googlebot"))
	require.False(t, data.TestAgent("/admin", "SomeRandomBot"))
	require.True(t, data.TestAgent("/public", "SomeRandomBot"))
}

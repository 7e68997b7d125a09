// Package bots classifies HTTP clients by matching user-agent strings against
// curated crawler name lists.
package bots

import "strings"

// Category labels the kind of automated client a user agent belongs to.
type Category string

// Supported bot categories. Unknown covers regular browsers and anything not
// on a curated list.
const (
	CategoryTraining    Category = "training"
	CategorySearch      Category = "search"
	CategoryTraditional Category = "traditional"
	CategoryUnknown     Category = "unknown"
)

// Bot pairs the canonical user-agent token (as published by the operator,
// used verbatim in robots.txt) with the lowercase substring matched against
// incoming user agents.
type Bot struct {
	Name  string
	Match string
}

// AI training crawlers, blocked by default in generated robots.txt.
var trainingBots = []Bot{
	{Name: "GPTBot", Match: "gptbot"},
	{Name: "anthropic-ai", Match: "anthropic-ai"},
	{Name: "Claude-Web", Match: "claude-web"},
	{Name: "CCBot", Match: "ccbot"},
	{Name: "Google-Extended", Match: "google-extended"},
	{Name: "FacebookBot", Match: "facebookbot"},
	{Name: "ByteSpider", Match: "bytespider"},
	{Name: "omgilibot", Match: "omgilibot"},
	{Name: "Diffbot", Match: "diffbot"},
	{Name: "cohere-ai", Match: "cohere-ai"},
	{Name: "img2dataset", Match: "img2dataset"},
	{Name: "Applebot-Extended", Match: "applebot-extended"},
}

// AI search and assistant crawlers, allowed by default.
var searchBots = []Bot{
	{Name: "ChatGPT-User", Match: "chatgpt-user"},
	{Name: "ClaudeBot", Match: "claudebot"},
	{Name: "OAI-SearchBot", Match: "oai-searchbot"},
	{Name: "PerplexityBot", Match: "perplexitybot"},
}

// Traditional search engine crawlers, allowed by default.
var traditionalBots = []Bot{
	{Name: "Googlebot", Match: "googlebot"},
	{Name: "Bingbot", Match: "bingbot"},
	{Name: "Slurp", Match: "slurp"},
	{Name: "DuckDuckBot", Match: "duckduckbot"},
	{Name: "Baiduspider", Match: "baiduspider"},
	{Name: "YandexBot", Match: "yandexbot"},
	{Name: "Applebot", Match: "applebot"},
	{Name: "PetalBot", Match: "petalbot"},
}

// Classify returns the category of the user agent. Lists are scanned in
// training, search, traditional order; the first substring match wins.
// Matching is case-insensitive.
func Classify(userAgent string) Category {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return CategoryUnknown
	}
	for _, list := range []struct {
		bots     []Bot
		category Category
	}{
		{trainingBots, CategoryTraining},
		{searchBots, CategorySearch},
		{traditionalBots, CategoryTraditional},
	} {
		for _, b := range list.bots {
			if strings.Contains(ua, b.Match) {
				return list.category
			}
		}
	}
	return CategoryUnknown
}

// IsTrainingBot reports whether the user agent belongs to an AI training
// crawler.
func IsTrainingBot(userAgent string) bool {
	return Classify(userAgent) == CategoryTraining
}

// IsSearchBot reports whether the user agent belongs to an AI search crawler.
func IsSearchBot(userAgent string) bool {
	return Classify(userAgent) == CategorySearch
}

// IsTraditionalBot reports whether the user agent belongs to a traditional
// search engine.
func IsTraditionalBot(userAgent string) bool {
	return Classify(userAgent) == CategoryTraditional
}

// IsAnyBot reports whether the user agent matches any curated list.
func IsAnyBot(userAgent string) bool {
	return Classify(userAgent) != CategoryUnknown
}

// TrainingBots returns the AI training crawler list.
func TrainingBots() []Bot { return clone(trainingBots) }

// SearchBots returns the AI search crawler list.
func SearchBots() []Bot { return clone(searchBots) }

// TraditionalBots returns the traditional search engine list.
func TraditionalBots() []Bot { return clone(traditionalBots) }

// AllLists returns every curated list keyed by category.
func AllLists() map[Category][]Bot {
	return map[Category][]Bot{
		CategoryTraining:    clone(trainingBots),
		CategorySearch:      clone(searchBots),
		CategoryTraditional: clone(traditionalBots),
	}
}

func clone(src []Bot) []Bot {
	dst := make([]Bot, len(src))
	copy(dst, src)
	return dst
}

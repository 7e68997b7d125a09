// Package analytics defines the visit events recorded for served pages and
// the hub that fans them out to sinks.
package analytics

import (
	"errors"
	"strings"
	"time"

	"github.com/atlasdocs/siteatlas/internal/bots"
)

// DeviceType is a coarse client device grouping derived from the user agent.
type DeviceType string

// Supported device classes. Crawler traffic gets its own class so device
// breakdowns count humans only in desktop/mobile/tablet.
const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceBot     DeviceType = "bot"
)

// MaxUserAgentLen caps the stored user agent string.
const MaxUserAgentLen = 200

// Visit captures a single page request.
type Visit struct {
	// ID uniquely identifies the visit.
	ID string `json:"id"`
	// Timestamp is the UTC time the request was observed.
	Timestamp time.Time `json:"timestamp"`
	// Path is the normalized request path.
	Path string `json:"path"`
	// Device groups the client as desktop, mobile, tablet, or bot.
	Device DeviceType `json:"device_type"`
	// BotCategory is set when the user agent matched a known crawler list;
	// it is empty for human traffic.
	BotCategory bots.Category `json:"bot_category,omitempty"`
	// UserAgent is the raw user agent, truncated to MaxUserAgentLen.
	UserAgent string `json:"user_agent"`
}

// Validate performs coarse validation on Visit payloads.
func (v Visit) Validate() error {
	if v.ID == "" {
		return errors.New("visit id is required")
	}
	if v.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	if v.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// IsBot reports whether the visit came from a known crawler.
func (v Visit) IsBot() bool {
	return v.BotCategory != "" && v.BotCategory != bots.CategoryUnknown
}

// NewVisit builds a Visit from request attributes, classifying the user agent
// and truncating it for storage.
func NewVisit(id string, ts time.Time, path, userAgent string) Visit {
	v := Visit{
		ID:        id,
		Timestamp: ts.UTC(),
		Path:      path,
		Device:    DetectDevice(userAgent),
		UserAgent: truncate(userAgent, MaxUserAgentLen),
	}
	if bots.IsAnyBot(userAgent) {
		v.BotCategory = bots.Classify(userAgent)
	}
	return v
}

var tabletMarkers = []string{"ipad", "tablet", "kindle", "silk"}

var mobileMarkers = []string{"mobile", "iphone", "android", "ipod", "blackberry", "windows phone"}

// DetectDevice classifies a user agent as bot, tablet, mobile, or desktop.
// Known crawlers and empty user agents are bots regardless of any device
// markers they carry; tablet markers are checked before mobile ones because
// tablet agents often also say "Mobile".
func DetectDevice(userAgent string) DeviceType {
	if userAgent == "" || bots.IsAnyBot(userAgent) {
		return DeviceBot
	}
	ua := strings.ToLower(userAgent)
	for _, m := range tabletMarkers {
		if strings.Contains(ua, m) {
			return DeviceTablet
		}
	}
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return DeviceMobile
		}
	}
	return DeviceDesktop
}

var assetExtensions = []string{".css", ".js", ".png", ".jpg", ".ico", ".svg", ".map"}

// IsAssetPath reports whether a request path refers to a static asset or an
// internal framework route rather than a page view.
func IsAssetPath(path string) bool {
	if strings.HasPrefix(path, "/_") {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

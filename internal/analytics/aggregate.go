package analytics

import (
	"sort"
	"time"
)

// Summary is the top-level analytics report served by the API.
type Summary struct {
	TotalVisits int            `json:"total_visits"`
	BotVisits   int            `json:"bot_visits"`
	HumanVisits int            `json:"human_visits"`
	ByDevice    map[string]int `json:"by_device"`
	UniquePaths int            `json:"unique_paths"`
}

// BotReport breaks bot traffic down by category with the most recent visits.
type BotReport struct {
	ByCategory map[string]int `json:"by_category"`
	Recent     []Visit        `json:"recent"`
}

// HourBucket counts visits for one clock hour of the trailing window.
type HourBucket struct {
	Hour   string `json:"hour"`
	Visits int    `json:"visits"`
	Bots   int    `json:"bots"`
}

// PageCount ranks a path by visit volume.
type PageCount struct {
	Path   string `json:"path"`
	Visits int    `json:"visits"`
}

// Summary builds the aggregate report from the retained window.
func (s *FileStore) Summary() Summary {
	st := s.Stats()
	return Summary{
		TotalVisits: st.TotalVisits,
		BotVisits:   st.BotVisits,
		HumanVisits: st.HumanVisits,
		ByDevice:    st.ByDevice,
		UniquePaths: len(st.ByPath),
	}
}

// BotReport returns per-category bot counts and the limit most recent bot
// visits, newest first.
func (s *FileStore) BotReport(limit int) BotReport {
	if limit <= 0 {
		limit = 20
	}
	st := s.Stats()
	visits := s.Visits()
	recent := make([]Visit, 0, limit)
	for i := len(visits) - 1; i >= 0 && len(recent) < limit; i-- {
		if visits[i].IsBot() {
			recent = append(recent, visits[i])
		}
	}
	return BotReport{ByCategory: st.ByBot, Recent: recent}
}

// Hourly buckets the trailing 24 hours of visits, oldest hour first. Empty
// hours are included so charts render a continuous axis.
func (s *FileStore) Hourly(now time.Time) []HourBucket {
	now = now.UTC().Truncate(time.Hour)
	start := now.Add(-23 * time.Hour)

	buckets := make([]HourBucket, 24)
	index := make(map[string]int, 24)
	for i := 0; i < 24; i++ {
		hour := start.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:00Z")
		buckets[i] = HourBucket{Hour: hour}
		index[hour] = i
	}
	for _, v := range s.Visits() {
		hour := v.Timestamp.UTC().Truncate(time.Hour).Format("2006-01-02T15:00Z")
		i, ok := index[hour]
		if !ok {
			continue
		}
		buckets[i].Visits++
		if v.IsBot() {
			buckets[i].Bots++
		}
	}
	return buckets
}

// TopPages returns up to limit paths ranked by visit count, ties broken by
// path for stable output.
func (s *FileStore) TopPages(limit int) []PageCount {
	if limit <= 0 {
		limit = 10
	}
	st := s.Stats()
	pages := make([]PageCount, 0, len(st.ByPath))
	for path, n := range st.ByPath {
		pages = append(pages, PageCount{Path: path, Visits: n})
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Visits != pages[j].Visits {
			return pages[i].Visits > pages[j].Visits
		}
		return pages[i].Path < pages[j].Path
	})
	if len(pages) > limit {
		pages = pages[:limit]
	}
	return pages
}

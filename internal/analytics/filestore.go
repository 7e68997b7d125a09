package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxVisits bounds the on-disk visit log.
const DefaultMaxVisits = 1000

// Stats summarizes the retained visit window. It is recomputed from the
// visit list on every load and persist, so a stale or hand-edited stats
// block on disk cannot drift from the data.
type Stats struct {
	TotalVisits int            `json:"total_visits"`
	BotVisits   int            `json:"bot_visits"`
	HumanVisits int            `json:"human_visits"`
	ByDevice    map[string]int `json:"by_device"`
	ByBot       map[string]int `json:"by_bot_category"`
	ByPath      map[string]int `json:"by_path"`
}

type snapshot struct {
	Visits []Visit `json:"visits"`
	Stats  Stats   `json:"stats"`
}

// FileStore persists visits to a JSON file, retaining at most maxVisits
// recent entries. Writes happen only from the hub's consumer goroutine;
// reads may come from any goroutine, so internal state is mutex-guarded.
type FileStore struct {
	path      string
	maxVisits int
	logger    *zap.Logger

	mu     sync.RWMutex
	visits []Visit
	stats  Stats
}

// NewFileStore opens or creates the visit log at path. An existing file is
// loaded and its stats recomputed; a corrupt file is logged and replaced
// rather than aborting startup.
func NewFileStore(path string, maxVisits int, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if maxVisits <= 0 {
		maxVisits = DefaultMaxVisits
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileStore{path: path, maxVisits: maxVisits, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.visits = []Visit{}
		s.stats = computeStats(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read visit log: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("visit log is corrupt, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		s.visits = []Visit{}
		s.stats = computeStats(nil)
		return nil
	}
	if len(snap.Visits) > s.maxVisits {
		snap.Visits = snap.Visits[len(snap.Visits)-s.maxVisits:]
	}
	s.visits = snap.Visits
	s.stats = computeStats(s.visits)
	return nil
}

// Consume appends the batch, trims to the retention cap, and persists the
// snapshot atomically via a temp file rename.
func (s *FileStore) Consume(ctx context.Context, batch []Visit) error {
	if s == nil || len(batch) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.visits = append(s.visits, batch...)
	if len(s.visits) > s.maxVisits {
		s.visits = s.visits[len(s.visits)-s.maxVisits:]
	}
	s.stats = computeStats(s.visits)
	snap := snapshot{Visits: s.visits, Stats: s.stats}
	s.mu.Unlock()

	return s.persist(snap)
}

// Close flushes the current snapshot to disk.
func (s *FileStore) Close(context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	snap := snapshot{Visits: s.visits, Stats: s.stats}
	s.mu.RUnlock()
	return s.persist(snap)
}

func (s *FileStore) persist(snap snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode visit log: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".visits-*.json")
	if err != nil {
		return fmt.Errorf("create temp visit log: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp visit log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp visit log: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace visit log: %w", err)
	}
	return nil
}

// Visits returns a copy of the retained visits, oldest first.
func (s *FileStore) Visits() []Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Visit(nil), s.visits...)
}

// Stats returns the current aggregate counters.
func (s *FileStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStats(s.stats)
}

func computeStats(visits []Visit) Stats {
	st := Stats{
		ByDevice: map[string]int{},
		ByBot:    map[string]int{},
		ByPath:   map[string]int{},
	}
	for _, v := range visits {
		st.TotalVisits++
		st.ByDevice[string(v.Device)]++
		st.ByPath[v.Path]++
		if v.IsBot() {
			st.BotVisits++
			st.ByBot[string(v.BotCategory)]++
		} else {
			st.HumanVisits++
		}
	}
	return st
}

func cloneStats(st Stats) Stats {
	out := Stats{
		TotalVisits: st.TotalVisits,
		BotVisits:   st.BotVisits,
		HumanVisits: st.HumanVisits,
		ByDevice:    make(map[string]int, len(st.ByDevice)),
		ByBot:       make(map[string]int, len(st.ByBot)),
		ByPath:      make(map[string]int, len(st.ByPath)),
	}
	for k, v := range st.ByDevice {
		out.ByDevice[k] = v
	}
	for k, v := range st.ByBot {
		out.ByBot[k] = v
	}
	for k, v := range st.ByPath {
		out.ByPath[k] = v
	}
	return out
}

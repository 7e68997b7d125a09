package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestHubBatchBySize verifies the hub flushes immediately once the batch size limit is reached.
func TestHubBatchBySize(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Config{
		BufferSize:     8,
		MaxBatchVisits: 2,
		MaxBatchWait:   time.Minute,
	}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	hub.Record(sampleVisit("/a"))
	hub.Record(sampleVisit("/b"))
	require.Eventually(t, func() bool {
		return len(sink.Batches()) == 1 && len(sink.Batches()[0]) == 2
	}, time.Second, 10*time.Millisecond)
}

// TestHubBatchByTimer verifies the timer-based flush kicks in when the batch is small.
func TestHubBatchByTimer(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Config{
		BufferSize:     4,
		MaxBatchVisits: 10,
		MaxBatchWait:   25 * time.Millisecond,
	}, sink)
	defer func() {
		require.NoError(t, hub.Close(context.Background()))
	}()

	hub.Record(sampleVisit("/a"))
	require.Eventually(t, func() bool {
		return len(sink.Batches()) == 1
	}, time.Second, 5*time.Millisecond)
}

// TestHubRecordNonBlockingWithoutConsumers asserts Record never blocks callers, even without sinks.
func TestHubRecordNonBlockingWithoutConsumers(t *testing.T) {
	t.Parallel()

	hub := &Hub{
		cfg:    Config{},
		visits: make(chan Visit),
		logger: zap.NewNop(),
	}
	start := time.Now()
	hub.Record(sampleVisit("/a"))
	require.Less(t, time.Since(start), 50*time.Millisecond)
}

// TestHubFlushOnClose ensures Close drains any buffered visits before returning.
func TestHubFlushOnClose(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Config{
		BufferSize:     4,
		MaxBatchVisits: 100,
		MaxBatchWait:   time.Minute,
	}, sink)

	hub.Record(sampleVisit("/a"))

	require.NoError(t, hub.Close(context.Background()))
	require.Len(t, sink.Batches(), 1)
	require.Len(t, sink.Batches()[0], 1)
}

// TestHubDropsInvalidVisits ensures malformed visits never reach sinks.
func TestHubDropsInvalidVisits(t *testing.T) {
	t.Parallel()

	sink := newStubSink()
	hub := NewHub(Config{BufferSize: 4, MaxBatchVisits: 1}, sink)

	hub.Record(Visit{Path: "/missing-id"})

	require.NoError(t, hub.Close(context.Background()))
	require.Empty(t, sink.Batches())
}

type stubSink struct {
	mu      sync.Mutex
	batches [][]Visit
}

func newStubSink() *stubSink {
	return &stubSink{batches: [][]Visit{}}
}

func (s *stubSink) Consume(_ context.Context, batch []Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyBatch := append([]Visit(nil), batch...)
	s.batches = append(s.batches, copyBatch)
	return nil
}

func (s *stubSink) Close(context.Context) error {
	return nil
}

func (s *stubSink) Batches() [][]Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]Visit, len(s.batches))
	for i, b := range s.batches {
		out[i] = append([]Visit(nil), b...)
	}
	return out
}

func sampleVisit(path string) Visit {
	return NewVisit("visit-"+path, time.Now(), path, "Mozilla/5.0 Chrome/120.0")
}

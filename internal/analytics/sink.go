package analytics

import "context"

// Sink consumes batches of visits. Implementations must be safe for repeated
// calls, honor ctx deadlines, and may be invoked concurrently.
type Sink interface {
	Consume(ctx context.Context, batch []Visit) error
	Close(ctx context.Context) error
}

// Recorder publishes individual visits; Hub satisfies this interface so the
// HTTP layer stays agnostic about how visits are buffered or persisted.
type Recorder interface {
	Record(v Visit)
}

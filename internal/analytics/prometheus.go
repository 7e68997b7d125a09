package analytics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink exports visit metrics. It owns the collectors for page
// views partitioned by device and bot category.
type PrometheusSink struct {
	visits   *prometheus.CounterVec
	botHits  *prometheus.CounterVec
	pageHits *prometheus.CounterVec
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siteatlas_visits_total",
			Help: "Page visits partitioned by device type and traffic kind.",
		}, []string{"device", "kind"}),
		botHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siteatlas_bot_visits_total",
			Help: "Bot visits partitioned by crawler category.",
		}, []string{"category"}),
		pageHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siteatlas_page_visits_total",
			Help: "Visits partitioned by page path.",
		}, []string{"path"}),
	}
	for _, collector := range []prometheus.Collector{s.visits, s.botHits, s.pageHits} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register analytics collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors using the provided batch. It is safe for
// concurrent use by multiple goroutines.
func (s *PrometheusSink) Consume(_ context.Context, batch []Visit) error {
	for _, v := range batch {
		kind := "human"
		if v.IsBot() {
			kind = "bot"
			s.botHits.WithLabelValues(string(v.BotCategory)).Inc()
		}
		s.visits.WithLabelValues(string(v.Device), kind).Inc()
		s.pageHits.WithLabelValues(v.Path).Inc()
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}

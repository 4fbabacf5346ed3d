// Package observability exports Prometheus metrics for the conversation
// engine, fed by the domain lifecycle hooks.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/servicehive/autostream/pkg/domain"
)

// Metrics records engine activity as Prometheus metrics.
type Metrics struct {
	nodeVisits        *prometheus.CounterVec
	nodeDuration      *prometheus.HistogramVec
	intentsResolved   *prometheus.CounterVec
	completerFailures *prometheus.CounterVec

	// entered tracks node entry times per session+node, to time the
	// matching node_leave.
	entered sync.Map
}

// NewMetrics registers the engine metrics on the given registerer. Use
// prometheus.DefaultRegisterer for the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		nodeVisits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autostream_node_visits_total",
				Help: "Total number of conversation node executions",
			},
			[]string{"node"},
		),
		nodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autostream_node_duration_seconds",
				Help:    "Time spent executing each conversation node",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"node"},
		),
		intentsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autostream_intents_total",
				Help: "Total number of resolved intents by label",
			},
			[]string{"intent"},
		),
		completerFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autostream_completer_failures_total",
				Help: "Total number of recovered completer failures by operation",
			},
			[]string{"op"},
		),
	}
}

// Hooks returns lifecycle hooks that feed these metrics.
func (m *Metrics) Hooks() *domain.LifecycleHooks {
	return &domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(string(e.NodeID)).Inc()
			m.entered.Store(e.SessionID+"|"+string(e.NodeID), e.Timestamp)
		},
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			key := e.SessionID + "|" + string(e.NodeID)
			if v, ok := m.entered.LoadAndDelete(key); ok {
				m.nodeDuration.WithLabelValues(string(e.NodeID)).
					Observe(e.Timestamp.Sub(v.(time.Time)).Seconds())
			}
		},
		OnIntentResolved: func(_ context.Context, e *domain.IntentEvent) {
			m.intentsResolved.WithLabelValues(string(e.Intent)).Inc()
		},
		OnCompleterError: func(_ context.Context, e *domain.CompleterErrorEvent) {
			m.completerFailures.WithLabelValues(e.Op).Inc()
		},
	}
}

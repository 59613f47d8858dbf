// Package metrics exposes Prometheus collectors for cardano-cli invocations.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/cardanocli/internal/ports"
)

const (
	namespace = "cardanocli"
	subsystem = "invoker"
)

// Invocations tracks cardano-cli calls per subcommand and outcome.
type Invocations struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	network  string
}

// NewInvocations registers the collectors on reg. A nil reg uses the
// default registerer.
func NewInvocations(reg prometheus.Registerer, network string) *Invocations {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if network == "" {
		network = "unknown"
	}
	f := promauto.With(reg)
	return &Invocations{
		total: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invocations_total",
			Help:      "Count of cardano-cli invocations.",
		}, []string{"network", "subcommand", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invocation_duration_seconds",
			Help:      "Duration of cardano-cli invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network", "subcommand", "status"}),
		network: network,
	}
}

// Observe records one invocation outcome and duration.
func (m *Invocations) Observe(subcommand string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.total.WithLabelValues(m.network, subcommand, status).Inc()
	m.duration.WithLabelValues(m.network, subcommand, status).Observe(time.Since(started).Seconds())
}

// Counter returns the invocation counter, for tests and exporters.
func (m *Invocations) Counter() *prometheus.CounterVec { return m.total }

// InstrumentedInvoker decorates an invoker with Invocations.
type InstrumentedInvoker struct {
	next    ports.Invoker
	metrics *Invocations
}

// Instrument wraps next.
func Instrument(next ports.Invoker, m *Invocations) *InstrumentedInvoker {
	return &InstrumentedInvoker{next: next, metrics: m}
}

// Invoke delegates to the wrapped invoker and records the outcome.
func (i *InstrumentedInvoker) Invoke(ctx context.Context, cmd ports.Command) (string, error) {
	started := time.Now()
	out, err := i.next.Invoke(ctx, cmd)
	i.metrics.Observe(cmd.Subcommand(), err, started)
	return out, err
}

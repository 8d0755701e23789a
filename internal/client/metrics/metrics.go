// Package metrics holds the client's prometheus collectors. They live on a
// private registry and are only read back through Snapshot.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dessertai"

// Request outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeAPIError    = "api_error"
	OutcomeUnavailable = "unavailable"
)

// Reconcile fetch outcomes.
const (
	FetchOK     = "ok"
	FetchFailed = "failed"
)

type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	fetches   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Remote API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Remote API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "fetches_total",
			Help:      "Supplemental rating fetches issued while reconciling collections.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.requests, m.durations, m.fetches)
	return m
}

// ObserveRequest records one gateway call. A nil receiver is a no-op so
// components can run without metrics in tests.
func (m *Metrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.durations.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Snapshot renders counters and histogram counts as sorted text lines.
func (m *Metrics) Snapshot() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var pairs []string
			for _, lp := range metric.GetLabel() {
				pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(pairs) > 0 {
				name += "{" + strings.Join(pairs, ",") + "}"
			}
			switch {
			case metric.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

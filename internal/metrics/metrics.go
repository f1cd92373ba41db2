// Package metrics exposes Prometheus counters for the order core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "digimenu"

// Metrics groups the order collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	ordersCreated   *prometheus.CounterVec
	orderRejections *prometheus.CounterVec
	orderTotal      prometheus.Histogram
	transitions     *prometheus.CounterVec
	publishFailures prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders committed, by delivery type.",
		}, []string{"delivery_type"}),
		orderRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_rejections_total",
			Help:      "Order submissions and status updates rejected, by error kind.",
		}, []string{"kind"}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_amount",
			Help:      "Total amount of committed orders.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000},
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Committed status transitions.",
		}, []string{"from", "to"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Order events that could not be delivered to at least one sink.",
		}),
	}
	reg.MustRegister(m.ordersCreated, m.orderRejections, m.orderTotal, m.transitions, m.publishFailures)
	return m
}

func (m *Metrics) OrderCreated(deliveryType string, total float64) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(deliveryType).Inc()
	m.orderTotal.Observe(total)
}

func (m *Metrics) OrderRejected(kind string) {
	if m == nil {
		return
	}
	m.orderRejections.WithLabelValues(kind).Inc()
}

func (m *Metrics) StatusChanged(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

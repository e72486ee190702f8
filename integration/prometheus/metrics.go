package prometheus

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records Blocker activity as Prometheus series. It implements blocker.Metrics.
type Metrics struct {
	published        *prometheus.CounterVec
	evicted          *prometheus.CounterVec
	observes         *prometheus.CounterVec
	callbackFailures *prometheus.CounterVec
	observedSize     *prometheus.GaugeVec
}

// NewMetrics creates the Blocker series and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer. Series already registered
// under the same names are reused, so several registries may share one namespace.
//
// Example:
//
//	m, err := prometheus.NewMetrics(promclient.DefaultRegisterer, "robot")
//	reg := channel.NewRegistry(channel.WithBlockerMetrics(m))
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "published_total",
			Help:      "Messages accepted by a channel.",
		}, []string{labelChannel}),
		evicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evicted_total",
			Help:      "Messages dropped by capacity eviction.",
		}, []string{labelChannel}),
		observes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "observe_total",
			Help:      "Snapshots taken of a channel.",
		}, []string{labelChannel}),
		callbackFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "callback_failures_total",
			Help:      "Subscriber callbacks that panicked.",
		}, []string{labelChannel, labelSubscriber}),
		observedSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "observed_size",
			Help:      "Size of the latest snapshot of a channel.",
		}, []string{labelChannel}),
	}

	var err error
	if m.published, err = register(reg, m.published); err != nil {
		return nil, err
	}
	if m.evicted, err = register(reg, m.evicted); err != nil {
		return nil, err
	}
	if m.observes, err = register(reg, m.observes); err != nil {
		return nil, err
	}
	if m.callbackFailures, err = register(reg, m.callbackFailures); err != nil {
		return nil, err
	}
	if m.observedSize, err = register(reg, m.observedSize); err != nil {
		return nil, err
	}
	return m, nil
}

// Published increments published_total.
func (m *Metrics) Published(channel string) {
	m.published.WithLabelValues(channel).Inc()
}

// Evicted adds n to evicted_total.
func (m *Metrics) Evicted(channel string, n int) {
	m.evicted.WithLabelValues(channel).Add(float64(n))
}

// Observed increments observe_total and sets observed_size.
func (m *Metrics) Observed(channel string, size int) {
	m.observes.WithLabelValues(channel).Inc()
	m.observedSize.WithLabelValues(channel).Set(float64(size))
}

// CallbackFailed increments callback_failures_total.
func (m *Metrics) CallbackFailed(channel, subscriber string) {
	m.callbackFailures.WithLabelValues(channel, subscriber).Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("%w: %w", ErrRegister, err)
	}
	return c, nil
}

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/intrabus/core/channel"
)

// StatsSource provides per-channel state. *channel.Registry satisfies it.
type StatsSource interface {
	Stats() []channel.Stats
}

// StatsCollector exports the state of every channel at scrape time.
type StatsCollector struct {
	source StatsSource

	capacity    *prometheus.Desc
	published   *prometheus.Desc
	observed    *prometheus.Desc
	subscribers *prometheus.Desc
}

// NewStatsCollector returns a collector reading from source on every scrape.
// Register it with a prometheus.Registerer.
func NewStatsCollector(source StatsSource, namespace string) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, name),
			help,
			[]string{labelChannel},
			nil,
		)
	}
	return &StatsCollector{
		source:      source,
		capacity:    desc("channel_capacity", "History bound of a channel."),
		published:   desc("channel_published", "Messages currently retained in the published history."),
		observed:    desc("channel_observed", "Messages in the latest snapshot."),
		subscribers: desc("channel_subscribers", "Registered subscriber callbacks."),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.published
	ch <- c.observed
	ch <- c.subscribers
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.source.Stats() {
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), s.Name)
		ch <- prometheus.MustNewConstMetric(c.published, prometheus.GaugeValue, float64(s.Published), s.Name)
		ch <- prometheus.MustNewConstMetric(c.observed, prometheus.GaugeValue, float64(s.Observed), s.Name)
		ch <- prometheus.MustNewConstMetric(c.subscribers, prometheus.GaugeValue, float64(s.Subscribers), s.Name)
	}
}

// Package prometheus exports bus activity to Prometheus.
//
// Metrics implements blocker.Metrics and counts publishes, evictions, snapshots and
// callback failures per channel. StatsCollector reads Registry.Stats at scrape time.
//
//	m, err := prometheus.NewMetrics(promclient.DefaultRegisterer, "robot")
//	if err != nil {
//		return err
//	}
//	reg := channel.NewRegistry(channel.WithBlockerMetrics(m))
//	promclient.MustRegister(prometheus.NewStatsCollector(reg, "robot"))
//
//	http.Handle("/metrics", prometheus.Handler())
package prometheus

package prometheus

import (
	"net/http"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/metrics/export/internaldefs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsSource interface {
	MetricsSnapshot() goSession.MetricsSnapshot
	AuditDropped() uint64
}

type histogramDesc struct {
	id   goSession.MetricID
	desc *prometheus.Desc
}

// Collector is a [prometheus.Collector] reading a Manager snapshot on
// every scrape.
//
//	Docs: docs/metrics.md
type Collector struct {
	source       metricsSource
	counters     map[goSession.MetricID]*prometheus.Desc
	order        []goSession.MetricID
	histograms   []histogramDesc
	auditDropped *prometheus.Desc
}

// NewCollector reads from the given Manager.
func NewCollector(m *goSession.Manager) *Collector {
	return NewCollectorFromSource(m)
}

// NewCollectorFromSource reads from any snapshot source.
func NewCollectorFromSource(source metricsSource) *Collector {
	c := &Collector{
		source:       source,
		counters:     make(map[goSession.MetricID]*prometheus.Desc, len(internaldefs.CounterDefs)),
		order:        make([]goSession.MetricID, 0, len(internaldefs.CounterDefs)),
		auditDropped: prometheus.NewDesc(internaldefs.AuditDroppedName, internaldefs.AuditDroppedHelp, nil, nil),
	}
	for _, def := range internaldefs.CounterDefs {
		c.counters[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
		c.order = append(c.order, def.ID)
	}
	for _, def := range internaldefs.HistogramDefs {
		c.histograms = append(c.histograms, histogramDesc{
			id:   def.ID,
			desc: prometheus.NewDesc(def.Name, def.Help, nil, nil),
		})
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, id := range c.order {
		ch <- c.counters[id]
	}
	for _, h := range c.histograms {
		ch <- h.desc
	}
	ch <- c.auditDropped
}

// Collect implements prometheus.Collector. Nothing is emitted while the
// Manager's metrics are disabled, except the audit drop counter.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c == nil || c.source == nil {
		return
	}
	snapshot := c.source.MetricsSnapshot()

	if len(snapshot.Counters) > 0 {
		for _, id := range c.order {
			ch <- prometheus.MustNewConstMetric(c.counters[id], prometheus.CounterValue, float64(snapshot.Counters[id]))
		}
	}

	for _, h := range c.histograms {
		raw, ok := snapshot.Histograms[h.id]
		if !ok {
			continue
		}
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(raw))
		buckets := make(map[float64]uint64, len(internaldefs.HistogramBoundsSeconds))
		for i, le := range internaldefs.HistogramBoundsSeconds {
			buckets[le] = cumulative[i]
		}
		// Sum is not tracked by the Manager.
		ch <- prometheus.MustNewConstHistogram(h.desc, cumulative[len(cumulative)-1], 0, buckets)
	}

	ch <- prometheus.MustNewConstMetric(c.auditDropped, prometheus.CounterValue, float64(c.source.AuditDropped()))
}

// Handler serves the collector from a private registry, so nothing is
// added to prometheus.DefaultRegisterer.
func (c *Collector) Handler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

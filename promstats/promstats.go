// Package promstats exports the bus counters of a zth05 display to Prometheus.
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"
	"periph.io/x/devices/v3/zth05"
)

// Source is implemented by *zth05.Dev.
type Source interface {
	Stats() zth05.Stats
}

// Collector is a prometheus.Collector reading the counters of one display.
type Collector struct {
	src Source

	transmissions *prometheus.Desc
	bytes         *prometheus.Desc
	skipped       *prometheus.Desc
	suppressed    *prometheus.Desc
	errors        *prometheus.Desc
}

// New returns a collector for src. constLabels are attached to every metric,
// e.g. to tell several displays apart.
func New(src Source, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("zth05", "display", name), help, nil, constLabels)
	}
	return &Collector{
		src:           src,
		transmissions: desc("transmissions_total", "Frames written to the bus."),
		bytes:         desc("bytes_total", "Bytes written to the bus."),
		skipped:       desc("skipped_updates_total", "Updates without changes to send."),
		suppressed:    desc("suppressed_updates_total", "Updates dropped while the display is off."),
		errors:        desc("errors_total", "Failed bus writes."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.transmissions
	ch <- c.bytes
	ch <- c.skipped
	ch <- c.suppressed
	ch <- c.errors
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	for _, m := range []struct {
		d *prometheus.Desc
		v uint64
	}{
		{c.transmissions, s.Transmissions},
		{c.bytes, s.Bytes},
		{c.skipped, s.Skipped},
		{c.suppressed, s.Suppressed},
		{c.errors, s.Errors},
	} {
		ch <- prometheus.MustNewConstMetric(m.d, prometheus.CounterValue, float64(m.v))
	}
}

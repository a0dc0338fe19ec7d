package hashset

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Observable is anything that can report set Stats.
type Observable interface {
	Stats() Stats
}

// Collector exports a set's Stats as Prometheus metrics. Collect reads the
// set directly, so scrapes must be serialized with mutation by the caller.
type Collector struct {
	set  Observable
	acct *Accounting

	size       *prom.Desc
	capacity   *prom.Desc
	loadFactor *prom.Desc
	ownedBytes *prom.Desc
	rehashes   *prom.Desc
}

// NewCollector labels every metric with set=name. acct may be nil.
func NewCollector(name string, set Observable, acct *Accounting) *Collector {
	labels := prom.Labels{"set": name}
	return &Collector{
		set:  set,
		acct: acct,
		size: prom.NewDesc("probeset_size",
			"Number of values stored in the set", nil, labels),
		capacity: prom.NewDesc("probeset_capacity",
			"Number of slots in the set", nil, labels),
		loadFactor: prom.NewDesc("probeset_load_factor",
			"Size divided by capacity", nil, labels),
		ownedBytes: prom.NewDesc("probeset_owned_bytes",
			"Estimated bytes held by the set's value copies", nil, labels),
		rehashes: prom.NewDesc("probeset_rehash_total",
			"Rehashes by direction", []string{"direction"}, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prom.Desc) {
	ch <- c.size
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.ownedBytes
	ch <- c.rehashes
}

func (c *Collector) Collect(ch chan<- prom.Metric) {
	st := c.set.Stats()
	ch <- prom.MustNewConstMetric(c.size, prom.GaugeValue, float64(st.Size))
	ch <- prom.MustNewConstMetric(c.capacity, prom.GaugeValue, float64(st.Capacity))
	ch <- prom.MustNewConstMetric(c.loadFactor, prom.GaugeValue, st.LoadFactor)
	ch <- prom.MustNewConstMetric(c.ownedBytes, prom.GaugeValue, float64(c.acct.Used()))
	ch <- prom.MustNewConstMetric(c.rehashes, prom.CounterValue, float64(st.Grows), "grow")
	ch <- prom.MustNewConstMetric(c.rehashes, prom.CounterValue, float64(st.Shrinks), "shrink")
}

package metrics

import (
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*PrometheusCollector)(nil)
var _ prometheus.Collector = (*PrometheusCollector)(nil)

// PrometheusCollector implements Collector using Prometheus metrics.
type PrometheusCollector struct {
	name   string
	labels prometheus.Labels

	// Counters - use atomic operations for lock-free performance.
	// routeCount is indexed by shard id, fixed at construction.
	routeCount     []int64
	migrationCount [2]int64 // [0] stay, [1] move

	// Gauges, only published for ring-backed components
	ringEntries   int64
	ringSizeBytes int64

	// Prometheus metric descriptors
	routeDesc     *prometheus.Desc
	migrationDesc *prometheus.Desc
	entriesDesc   *prometheus.Desc
	sizeDesc      *prometheus.Desc

	// Static configuration gauges (one per setting)
	settingsTotalShards  prometheus.Gauge
	settingsVirtualNodes prometheus.Gauge
	settingsSeed         prometheus.Gauge
	settingsAlgorithm    prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus-based metric collector.
// virtualNodes is nil for plain modulo routers, which do not publish ring
// gauges.
func NewPrometheusCollector(name string, totalShards int, virtualNodes *int, seed uint32, algorithm string) *PrometheusCollector {
	labels := map[string]string{
		"name": name,
	}

	collector := &PrometheusCollector{
		name:       name,
		labels:     prometheus.Labels(labels),
		routeCount: make([]int64, totalShards),
	}

	collector.routeDesc = prometheus.NewDesc(
		"shardkey_route_total",
		"Total number of keys routed, per shard",
		[]string{"shard"}, labels,
	)
	collector.migrationDesc = prometheus.NewDesc(
		"shardkey_migration_check_total",
		"Total number of resharding-impact checks, by outcome",
		[]string{"needs_migration"}, labels,
	)

	//
	// Routing settings
	//

	collector.settingsTotalShards = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "shardkey_settings_total_shards",
		Help:        "Number of logical shards keys are routed to",
		ConstLabels: labels,
	})
	collector.settingsTotalShards.Set(float64(totalShards))

	collector.settingsSeed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "shardkey_settings_seed",
		Help:        "Hash seed used for key placement",
		ConstLabels: labels,
	})
	collector.settingsSeed.Set(float64(seed))

	// Convert algorithm string to numeric value for the gauge
	algorithmValue := -1.0
	switch algorithm {
	case "murmur3_32":
		algorithmValue = 0.0
	case "murmur3_128":
		algorithmValue = 1.0
	case "xxhash64":
		algorithmValue = 2.0
	}
	collector.settingsAlgorithm = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "shardkey_settings_algorithm",
		Help:        "Hash algorithm (0=murmur3_32, 1=murmur3_128, 2=xxhash64)",
		ConstLabels: labels,
	})
	collector.settingsAlgorithm.Set(algorithmValue)

	if virtualNodes != nil {
		collector.settingsVirtualNodes = prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "shardkey_settings_virtual_nodes",
			Help:        "Number of virtual nodes per shard on the consistent-hash ring",
			ConstLabels: labels,
		})
		collector.settingsVirtualNodes.Set(float64(*virtualNodes))

		collector.entriesDesc = prometheus.NewDesc(
			"shardkey_ring_entries",
			"Number of entries on the consistent-hash ring",
			nil, labels,
		)
		collector.sizeDesc = prometheus.NewDesc(
			"shardkey_ring_memory_bytes",
			"Memory footprint of the precomputed ring entries",
			nil, labels,
		)
	}

	return collector
}

// IncRoute atomically increments the route counter of the given shard.
func (p *PrometheusCollector) IncRoute(shard int) {
	if shard >= 0 && shard < len(p.routeCount) {
		atomic.AddInt64(&p.routeCount[shard], 1)
	}
}

// AddRoutes atomically adds the specified count to the route counter of the
// given shard.
func (p *PrometheusCollector) AddRoutes(shard int, count int64) {
	if shard >= 0 && shard < len(p.routeCount) {
		atomic.AddInt64(&p.routeCount[shard], count)
	}
}

// IncMigrationCheck atomically increments the migration-check counter for the
// given outcome.
func (p *PrometheusCollector) IncMigrationCheck(needs bool) {
	if needs {
		atomic.AddInt64(&p.migrationCount[1], 1)
	} else {
		atomic.AddInt64(&p.migrationCount[0], 1)
	}
}

// SetRingEntries atomically updates the ring entry count gauge.
func (p *PrometheusCollector) SetRingEntries(count int64) {
	atomic.StoreInt64(&p.ringEntries, count)
}

// SetRingSizeBytes atomically updates the ring memory footprint gauge.
func (p *PrometheusCollector) SetRingSizeBytes(bytes int64) {
	atomic.StoreInt64(&p.ringSizeBytes, bytes)
}

// Describe implements prometheus.Collector interface.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.routeDesc
	ch <- p.migrationDesc
	ch <- p.settingsTotalShards.Desc()
	ch <- p.settingsSeed.Desc()
	ch <- p.settingsAlgorithm.Desc()
	if p.settingsVirtualNodes != nil {
		ch <- p.settingsVirtualNodes.Desc()
	}
	if p.entriesDesc != nil {
		ch <- p.entriesDesc
	}
	if p.sizeDesc != nil {
		ch <- p.sizeDesc
	}
}

// Collect implements prometheus.Collector interface.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for shard := range p.routeCount {
		ch <- prometheus.MustNewConstMetric(
			p.routeDesc,
			prometheus.CounterValue,
			float64(atomic.LoadInt64(&p.routeCount[shard])),
			strconv.Itoa(shard),
		)
	}

	ch <- prometheus.MustNewConstMetric(
		p.migrationDesc,
		prometheus.CounterValue,
		float64(atomic.LoadInt64(&p.migrationCount[0])),
		"false",
	)
	ch <- prometheus.MustNewConstMetric(
		p.migrationDesc,
		prometheus.CounterValue,
		float64(atomic.LoadInt64(&p.migrationCount[1])),
		"true",
	)

	ch <- p.settingsTotalShards
	ch <- p.settingsSeed
	ch <- p.settingsAlgorithm

	if p.settingsVirtualNodes != nil {
		ch <- p.settingsVirtualNodes
	}
	if p.entriesDesc != nil {
		ch <- prometheus.MustNewConstMetric(
			p.entriesDesc,
			prometheus.GaugeValue,
			float64(atomic.LoadInt64(&p.ringEntries)),
		)
	}
	if p.sizeDesc != nil {
		ch <- prometheus.MustNewConstMetric(
			p.sizeDesc,
			prometheus.GaugeValue,
			float64(atomic.LoadInt64(&p.ringSizeBytes)),
		)
	}
}

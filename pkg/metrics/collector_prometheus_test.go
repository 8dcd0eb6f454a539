package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNewPrometheusCollector(t *testing.T) {
	is := assert.New(t)

	// Router-shaped collector: no ring gauges.
	collector := NewPrometheusCollector("users", 4, nil, 42, "murmur3_32")
	is.NotNil(collector)
	is.Equal("users", collector.name)
	is.Len(collector.routeCount, 4)
	is.NotNil(collector.routeDesc)
	is.NotNil(collector.migrationDesc)
	is.NotNil(collector.settingsTotalShards)
	is.NotNil(collector.settingsSeed)
	is.NotNil(collector.settingsAlgorithm)
	is.Nil(collector.settingsVirtualNodes)
	is.Nil(collector.entriesDesc)
	is.Nil(collector.sizeDesc)

	// Ring-shaped collector publishes the ring gauges too.
	virtualNodes := 150
	collector = NewPrometheusCollector("users-ring", 4, &virtualNodes, 42, "murmur3_128")
	is.NotNil(collector.settingsVirtualNodes)
	is.NotNil(collector.entriesDesc)
	is.NotNil(collector.sizeDesc)
}

func TestNewPrometheusCollectorAlgorithmValues(t *testing.T) {
	is := assert.New(t)

	// Known and unknown algorithm tags: the constructor never fails, the
	// gauge just reports -1 for unknown tags.
	for _, algorithm := range []string{"murmur3_32", "murmur3_128", "xxhash64", "unknown"} {
		collector := NewPrometheusCollector("test", 2, nil, 0, algorithm)
		is.NotNil(collector, "algorithm %s", algorithm)
		is.NotNil(collector.settingsAlgorithm, "algorithm %s", algorithm)
	}
}

func TestPrometheusCollectorRouteCounters(t *testing.T) {
	is := assert.New(t)

	collector := NewPrometheusCollector("test", 4, nil, 0, "murmur3_32")

	collector.IncRoute(0)
	collector.IncRoute(0)
	collector.IncRoute(3)
	collector.AddRoutes(1, 40)

	is.Equal(int64(2), collector.routeCount[0])
	is.Equal(int64(40), collector.routeCount[1])
	is.Equal(int64(0), collector.routeCount[2])
	is.Equal(int64(1), collector.routeCount[3])

	// Out-of-range shards are ignored, not panicking.
	is.NotPanics(func() {
		collector.IncRoute(-1)
		collector.IncRoute(4)
		collector.AddRoutes(99, 10)
	})
}

func TestPrometheusCollectorMigrationCounters(t *testing.T) {
	is := assert.New(t)

	collector := NewPrometheusCollector("test", 4, nil, 0, "murmur3_32")

	collector.IncMigrationCheck(true)
	collector.IncMigrationCheck(true)
	collector.IncMigrationCheck(false)

	is.Equal(int64(1), collector.migrationCount[0])
	is.Equal(int64(2), collector.migrationCount[1])
}

func TestPrometheusCollectorRingGauges(t *testing.T) {
	is := assert.New(t)

	virtualNodes := 150
	collector := NewPrometheusCollector("test", 4, &virtualNodes, 0, "murmur3_32")

	collector.SetRingEntries(600)
	collector.SetRingSizeBytes(9600)

	is.Equal(int64(600), collector.ringEntries)
	is.Equal(int64(9600), collector.ringSizeBytes)
}

func TestPrometheusCollectorDescribeCollect(t *testing.T) {
	is := assert.New(t)

	collector := NewPrometheusCollector("test", 4, nil, 42, "murmur3_32")
	collector.IncRoute(1)
	collector.IncMigrationCheck(true)

	descs := make(chan *prometheus.Desc, 32)
	collector.Describe(descs)
	close(descs)
	descCount := 0
	for range descs {
		descCount++
	}
	// route + migration + 3 settings gauges
	is.Equal(5, descCount)

	mfs := make(chan prometheus.Metric, 32)
	collector.Collect(mfs)
	close(mfs)
	metricCount := 0
	for m := range mfs {
		is.NotNil(m)
		metricCount++
	}
	// 4 per-shard route counters + 2 migration outcomes + 3 settings gauges
	is.Equal(9, metricCount)

	// Ring-shaped collector adds virtual-node setting and the two ring gauges.
	virtualNodes := 150
	ringCollector := NewPrometheusCollector("test-ring", 4, &virtualNodes, 42, "murmur3_32")
	ringCollector.SetRingEntries(600)

	mfs = make(chan prometheus.Metric, 32)
	ringCollector.Collect(mfs)
	close(mfs)
	metricCount = 0
	for range mfs {
		metricCount++
	}
	is.Equal(12, metricCount)
}

func TestPrometheusCollectorConcurrency(t *testing.T) {
	is := assert.New(t)

	collector := NewPrometheusCollector("test", 8, nil, 0, "murmur3_32")

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		shard := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				collector.IncRoute(shard)
				collector.IncMigrationCheck(i%2 == 0)
			}
		}()
	}
	wg.Wait()

	for shard := 0; shard < 8; shard++ {
		is.Equal(int64(1000), collector.routeCount[shard])
	}
	is.Equal(int64(4000), collector.migrationCount[0])
	is.Equal(int64(4000), collector.migrationCount[1])
}

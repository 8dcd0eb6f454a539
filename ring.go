package shardkey

import (
	"fmt"
	"sort"

	"github.com/DmitriyVTitov/size"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/shardkey/internal"
	"github.com/samber/shardkey/pkg/hasher"
	"github.com/samber/shardkey/pkg/metrics"
)

var _ prometheus.Collector = (*Ring)(nil)

// ringEntry is one virtual-node position on the ring.
type ringEntry struct {
	hash  uint64
	shard int
}

// newRing precomputes the sorted ring entries.
// This is an internal constructor used by the builder pattern.
func newRing(cfg RingConfig, fn hasher.Func, collector metrics.Collector) *Ring {
	entries := make([]ringEntry, 0, cfg.totalShards*cfg.virtualNodes)
	for shard := 0; shard < cfg.totalShards; shard++ {
		for vnode := 0; vnode < cfg.virtualNodes; vnode++ {
			identifier := fmt.Sprintf("shard_%d_vnode_%d", shard, vnode)
			entries = append(entries, ringEntry{
				hash:  fn([]byte(identifier), cfg.seed),
				shard: shard,
			})
		}
	}

	// Stable sort keeps insertion order on equal hashes, so two rings built
	// from the same configuration are entry-for-entry identical.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].hash < entries[j].hash
	})

	collector.SetRingEntries(int64(len(entries)))
	collector.SetRingSizeBytes(int64(size.Of(entries)))

	return &Ring{
		totalShards:  cfg.totalShards,
		virtualNodes: cfg.virtualNodes,
		seed:         cfg.seed,
		algorithm:    cfg.algorithm,
		hash:         fn,
		entries:      entries,
		collector:    collector,
	}
}

// Ring places keys on shards with consistent hashing over a virtual-node
// ring. Each shard is replicated into virtualNodes ring positions; a key is
// owned by the first position at or after its hash, wrapping around at the
// end of the ring.
//
// Changing the shard count moves roughly 1/totalShards of keys per shard
// added or removed, versus near-total reshuffling under modulo placement.
//
// A Ring is immutable after Build and safe for concurrent use. Resizing means
// building a new Ring and swapping the reference used by readers.
type Ring struct {
	noCopy internal.NoCopy // Prevents accidental copying of the ring

	totalShards  int
	virtualNodes int
	seed         uint32
	algorithm    hasher.Algorithm
	hash         hasher.Func
	entries      []ringEntry
	collector    metrics.Collector
}

// Route returns the shard owning key, an integer in [0, totalShards).
func (r *Ring) Route(key Key) int {
	shard := r.shardOf(key)
	r.collector.IncRoute(shard)
	return shard
}

func (r *Ring) shardOf(key Key) int {
	h := r.hash(key, r.seed)

	// Successor lookup: first entry whose hash is >= h.
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].hash >= h
	})
	if i == len(r.entries) {
		// Past the last entry, wrap around to the ring start.
		i = 0
	}

	return r.entries[i].shard
}

// Distribution routes every key and tallies occurrences per shard. Keys need
// not be unique and their order does not affect the result.
func (r *Ring) Distribution(keys []Key) map[int]int {
	distribution := make(map[int]int, r.totalShards)
	for _, key := range keys {
		distribution[r.shardOf(key)]++
	}

	for shard, count := range distribution {
		r.collector.AddRoutes(shard, int64(count))
	}

	return distribution
}

// TotalShards returns the number of shards keys are routed to.
func (r *Ring) TotalShards() int {
	return r.totalShards
}

// VirtualNodes returns the number of ring positions per shard.
func (r *Ring) VirtualNodes() int {
	return r.virtualNodes
}

// Seed returns the hash seed.
func (r *Ring) Seed() uint32 {
	return r.seed
}

// Algorithm returns the hash algorithm tag.
func (r *Ring) Algorithm() hasher.Algorithm {
	return r.algorithm
}

// Len returns the total number of ring entries, totalShards * virtualNodes.
func (r *Ring) Len() int {
	return len(r.entries)
}

// Describe implements prometheus.Collector. It is a no-op when metrics are
// disabled.
func (r *Ring) Describe(ch chan<- *prometheus.Desc) {
	if collector, ok := r.collector.(prometheus.Collector); ok {
		collector.Describe(ch)
	}
}

// Collect implements prometheus.Collector. It is a no-op when metrics are
// disabled.
func (r *Ring) Collect(ch chan<- prometheus.Metric) {
	if collector, ok := r.collector.(prometheus.Collector); ok {
		collector.Collect(ch)
	}
}

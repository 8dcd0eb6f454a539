package shardkey

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/shardkey/internal"
	"github.com/samber/shardkey/pkg/hasher"
	"github.com/samber/shardkey/pkg/metrics"
)

var _ prometheus.Collector = (*Router)(nil)

// newRouter creates a new Router instance with a resolved hash function.
// This is an internal constructor used by the builder pattern.
func newRouter(cfg RouterConfig, fn hasher.Func, collector metrics.Collector) *Router {
	return &Router{
		totalShards: cfg.totalShards,
		seed:        cfg.seed,
		algorithm:   cfg.algorithm,
		hash:        fn,
		collector:   collector,
	}
}

// Router places keys on shards with fixed-modulo hashing:
// shard = hash(key, seed) mod totalShards.
//
// A Router is immutable after Build and safe for concurrent use. Note that
// changing the shard count relocates up to (N-1)/N of all keys; use Ring when
// resharding cost matters.
type Router struct {
	noCopy internal.NoCopy // Prevents accidental copying of the router

	totalShards int
	seed        uint32
	algorithm   hasher.Algorithm
	hash        hasher.Func
	collector   metrics.Collector
}

// Route returns the shard owning key, an integer in [0, totalShards).
func (r *Router) Route(key Key) int {
	shard := r.shardOf(key)
	r.collector.IncRoute(shard)
	return shard
}

func (r *Router) shardOf(key Key) int {
	return int(r.hash(key, r.seed) % uint64(r.totalShards))
}

// Distribution routes every key and tallies occurrences per shard. Keys need
// not be unique and their order does not affect the result.
func (r *Router) Distribution(keys []Key) map[int]int {
	distribution := make(map[int]int, r.totalShards)
	for _, key := range keys {
		distribution[r.shardOf(key)]++
	}

	for shard, count := range distribution {
		r.collector.AddRoutes(shard, int64(count))
	}

	return distribution
}

// Migration describes where a key lived before and after a shard-count
// change under modulo placement.
type Migration struct {
	OldShard       int
	NewShard       int
	NeedsMigration bool
}

// MigrationImpact compares the shard the key had under oldTotalShards with
// its shard under the current count, using the same hash and seed for both.
// It panics if oldTotalShards is not a positive integer.
func (r *Router) MigrationImpact(key Key, oldTotalShards int) Migration {
	assertValue(oldTotalShards >= 1, "old total shards must be greater than zero")

	h := r.hash(key, r.seed)
	migration := Migration{
		OldShard: int(h % uint64(oldTotalShards)),
		NewShard: int(h % uint64(r.totalShards)),
	}
	migration.NeedsMigration = migration.OldShard != migration.NewShard

	r.collector.IncMigrationCheck(migration.NeedsMigration)

	return migration
}

// TotalShards returns the number of shards keys are routed to.
func (r *Router) TotalShards() int {
	return r.totalShards
}

// Seed returns the hash seed.
func (r *Router) Seed() uint32 {
	return r.seed
}

// Algorithm returns the hash algorithm tag.
func (r *Router) Algorithm() hasher.Algorithm {
	return r.algorithm
}

// Describe implements prometheus.Collector. It is a no-op when metrics are
// disabled.
func (r *Router) Describe(ch chan<- *prometheus.Desc) {
	if collector, ok := r.collector.(prometheus.Collector); ok {
		collector.Describe(ch)
	}
}

// Collect implements prometheus.Collector. It is a no-op when metrics are
// disabled.
func (r *Router) Collect(ch chan<- prometheus.Metric) {
	if collector, ok := r.collector.(prometheus.Collector); ok {
		collector.Collect(ch)
	}
}

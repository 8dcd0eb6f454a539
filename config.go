package shardkey

import (
	"fmt"

	"github.com/samber/shardkey/pkg/hasher"
	"github.com/samber/shardkey/pkg/metrics"
)

// DefaultVirtualNodes is the number of virtual nodes per shard used when
// WithVirtualNodes is not called. A count this high keeps the per-shard load
// variance of the ring low.
const DefaultVirtualNodes = 150

// NewRouter starts the configuration of a modulo Router over totalShards
// shards. Defaults: seed 0, murmur3_32, metrics disabled.
func NewRouter(totalShards int) RouterConfig {
	return RouterConfig{
		totalShards: totalShards,
		algorithm:   hasher.Murmur32,
	}
}

// RouterConfig accumulates Router settings before Build.
type RouterConfig struct {
	totalShards    int
	seed           uint32
	algorithm      hasher.Algorithm
	prometheusName string
}

// WithSeed sets the hash seed. Routers sharing a seed, algorithm and shard
// count compute identical placements.
func (cfg RouterConfig) WithSeed(seed uint32) RouterConfig {
	cfg.seed = seed
	return cfg
}

// WithAlgorithm selects the hash algorithm. Unknown tags are rejected by
// Build, not here.
func (cfg RouterConfig) WithAlgorithm(algorithm hasher.Algorithm) RouterConfig {
	cfg.algorithm = algorithm
	return cfg
}

// WithPrometheusMetrics enables a Prometheus collector labeled with the given
// name. The Router itself implements prometheus.Collector and can be passed
// to prometheus.Register.
func (cfg RouterConfig) WithPrometheusMetrics(name string) RouterConfig {
	cfg.prometheusName = name
	return cfg
}

// Build validates the configuration and returns an immutable Router.
func (cfg RouterConfig) Build() (*Router, error) {
	if cfg.totalShards < 1 {
		return nil, fmt.Errorf("%w: total shards must be greater than zero, got %d", ErrInvalidConfiguration, cfg.totalShards)
	}

	fn, err := hasher.New(cfg.algorithm)
	if err != nil {
		return nil, err
	}

	collector := metrics.Collector(&metrics.NoOpCollector{})
	if cfg.prometheusName != "" {
		collector = metrics.NewPrometheusCollector(cfg.prometheusName, cfg.totalShards, nil, cfg.seed, string(cfg.algorithm))
	}

	return newRouter(cfg, fn, collector), nil
}

// NewRing starts the configuration of a consistent-hash Ring over totalShards
// shards. Defaults: seed 0, murmur3_32, DefaultVirtualNodes virtual nodes,
// metrics disabled.
func NewRing(totalShards int) RingConfig {
	return RingConfig{
		totalShards:  totalShards,
		virtualNodes: DefaultVirtualNodes,
		algorithm:    hasher.Murmur32,
	}
}

// NewRingFromRouter starts a Ring configuration sharing the router's shard
// count, seed and hash algorithm, so both strategies place keys with the same
// hash function.
func NewRingFromRouter(r *Router) RingConfig {
	return NewRing(r.TotalShards()).
		WithSeed(r.Seed()).
		WithAlgorithm(r.Algorithm())
}

// RingConfig accumulates Ring settings before Build.
type RingConfig struct {
	totalShards    int
	virtualNodes   int
	seed           uint32
	algorithm      hasher.Algorithm
	prometheusName string
}

// WithVirtualNodes sets the number of ring positions per shard. More virtual
// nodes smooth the load distribution at the cost of ring size.
func (cfg RingConfig) WithVirtualNodes(virtualNodes int) RingConfig {
	cfg.virtualNodes = virtualNodes
	return cfg
}

// WithSeed sets the hash seed shared by ring construction and key lookup.
func (cfg RingConfig) WithSeed(seed uint32) RingConfig {
	cfg.seed = seed
	return cfg
}

// WithAlgorithm selects the hash algorithm. Unknown tags are rejected by
// Build, not here.
func (cfg RingConfig) WithAlgorithm(algorithm hasher.Algorithm) RingConfig {
	cfg.algorithm = algorithm
	return cfg
}

// WithPrometheusMetrics enables a Prometheus collector labeled with the given
// name. The Ring itself implements prometheus.Collector and can be passed to
// prometheus.Register.
func (cfg RingConfig) WithPrometheusMetrics(name string) RingConfig {
	cfg.prometheusName = name
	return cfg
}

// Build validates the configuration, precomputes the sorted ring and returns
// an immutable Ring. An empty ring is unbuildable: zero shards or zero
// virtual nodes fail here, never at lookup time.
func (cfg RingConfig) Build() (*Ring, error) {
	if cfg.totalShards < 1 {
		return nil, fmt.Errorf("%w: total shards must be greater than zero, got %d", ErrInvalidConfiguration, cfg.totalShards)
	}
	if cfg.virtualNodes < 1 {
		return nil, fmt.Errorf("%w: virtual nodes must be greater than zero, got %d", ErrInvalidConfiguration, cfg.virtualNodes)
	}

	fn, err := hasher.New(cfg.algorithm)
	if err != nil {
		return nil, err
	}

	collector := metrics.Collector(&metrics.NoOpCollector{})
	if cfg.prometheusName != "" {
		collector = metrics.NewPrometheusCollector(cfg.prometheusName, cfg.totalShards, &cfg.virtualNodes, cfg.seed, string(cfg.algorithm))
	}

	return newRing(cfg, fn, collector), nil
}

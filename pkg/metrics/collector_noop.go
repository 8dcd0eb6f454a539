package metrics

var _ Collector = (*NoOpCollector)(nil)

// NoOpCollector is a no-op implementation of Collector that does nothing.
// This provides better performance than conditional checks when metrics are
// disabled.
type NoOpCollector struct{}

func (n *NoOpCollector) IncRoute(shard int)               {}
func (n *NoOpCollector) AddRoutes(shard int, count int64) {}
func (n *NoOpCollector) IncMigrationCheck(needs bool)     {}
func (n *NoOpCollector) SetRingEntries(count int64)       {}
func (n *NoOpCollector) SetRingSizeBytes(bytes int64)     {}

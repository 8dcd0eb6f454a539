package metrics

// Collector defines the metric collection operations of a routing component.
// This allows for both real Prometheus metrics and no-op implementations.
type Collector interface {
	IncRoute(shard int)
	AddRoutes(shard int, count int64)
	IncMigrationCheck(needsMigration bool)
	SetRingEntries(count int64)
	SetRingSizeBytes(bytes int64)
}

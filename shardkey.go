// Package shardkey maps arbitrary keys (user ids, order ids, ...) to one of N
// logical shards. Two routing strategies are provided: fixed-modulo hashing
// (Router) and consistent hashing over a virtual-node ring (Ring).
//
// Both strategies are pure computations over immutable configuration: once
// built, a Router or Ring never changes and is safe for concurrent use without
// synchronization. Changing the shard count means building a new instance and
// swapping the reference used by readers, never mutating in place.
package shardkey

// assertValue panics with the given message if the condition is false.
// This is used for validating call parameters.
func assertValue(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}

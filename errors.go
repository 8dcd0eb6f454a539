package shardkey

import "errors"

// ErrInvalidConfiguration is returned by Build when the requested topology
// cannot be constructed: zero or negative shard count, or zero virtual nodes.
// Unknown hash algorithms are reported as hasher.ErrUnsupportedAlgorithm.
var ErrInvalidConfiguration = errors.New("shardkey: invalid configuration")

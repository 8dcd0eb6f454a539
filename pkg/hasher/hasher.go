// Package hasher provides the hash capability shared by the modulo router and
// the consistent-hash ring: deterministic, seed-parameterized functions from
// key bytes to an unsigned integer.
package hasher

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// ErrUnsupportedAlgorithm is returned by New when the algorithm tag does not
// match a known hash variant.
var ErrUnsupportedAlgorithm = errors.New("shardkey: unsupported hash algorithm")

// Algorithm selects the hash function used for key placement. The tag is part
// of the routing contract: two deployments using the same tag and seed compute
// identical shard ids for identical keys.
type Algorithm string

const (
	// Murmur32 is MurmurHash3 32-bit. Output spans [0, 2^32-1].
	Murmur32 Algorithm = "murmur3_32"
	// Murmur128 keeps the low 64 bits of the MurmurHash3 128-bit digest,
	// with the top bit cleared so the value fits a non-negative int64.
	Murmur128 Algorithm = "murmur3_128"
	// XXH64 is a seeded xxHash64 digest, top bit cleared like Murmur128.
	XXH64 Algorithm = "xxhash64"
)

// Algorithms lists every supported algorithm tag.
var Algorithms = []Algorithm{Murmur32, Murmur128, XXH64}

// mask63 clears the top bit of a 64-bit digest.
const mask63 = 0x7fffffffffffffff

// Func deterministically maps key bytes and a seed to an unsigned hash value.
// Implementations must be pure: same key and seed, same output. Strings are
// expected to be passed as their UTF-8 bytes.
type Func func(key []byte, seed uint32) uint64

// New returns the hash function for the given algorithm tag. The choice is
// resolved once at construction time, never per call.
func New(algorithm Algorithm) (Func, error) {
	switch algorithm {
	case Murmur32:
		return murmur32, nil
	case Murmur128:
		return murmur128, nil
	case XXH64:
		return xxh64, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
}

func murmur32(key []byte, seed uint32) uint64 {
	return uint64(murmur3.Sum32WithSeed(key, seed))
}

func murmur128(key []byte, seed uint32) uint64 {
	h1, _ := murmur3.Sum128WithSeed(key, seed)
	return h1 & mask63
}

func xxh64(key []byte, seed uint32) uint64 {
	d := xxhash.NewWithSeed(uint64(seed))
	_, _ = d.Write(key)
	return d.Sum64() & mask63
}

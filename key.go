package shardkey

import "strconv"

// Key is the canonical byte form of a sharding key. Routing hashes the raw
// bytes, so two keys with the same canonical form always land on the same
// shard, whatever constructor produced them.
type Key []byte

// StringKey canonicalizes a string key to its UTF-8 bytes.
func StringKey(s string) Key {
	return Key(s)
}

// BytesKey uses raw bytes as the key, unchanged.
func BytesKey(b []byte) Key {
	return Key(b)
}

// IntKey canonicalizes an integer to its decimal string representation, so
// IntKey(123) routes exactly like StringKey("123").
func IntKey(n int64) Key {
	return Key(strconv.FormatInt(n, 10))
}

// Package determinism provides primitives for deterministic hashing and ordering.
// Table hashes and cache keys must come from here so equal inputs always agree.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashJSON hashes the JSON encoding of v.
// encoding/json sorts map keys, so maps hash the same regardless of insertion order.
func HashJSON(v any) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, fmt.Errorf("hash: %w", err)
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// Fingerprint derives a stable key from a namespace and any JSON-encodable parts
func Fingerprint(namespace string, parts ...any) (string, error) {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	for i, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return "", fmt.Errorf("fingerprint part %d: %w", i, err)
		}
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// InputHash keys one quote: the input, the constants table it was priced
// against and the calendar month. Equal keys always price identically.
func InputHash(input any, table ContentHash, month int) (string, error) {
	return Fingerprint("quote", input, table.Hex(), month)
}

// SortedKeys returns a sorted copy of map keys
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

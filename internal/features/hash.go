package features

import "github.com/cespare/xxhash/v2"

// EncodeModulus bounds every hashed categorical value to [0, EncodeModulus).
const EncodeModulus = 1000

// EncodeString maps a categorical value to a stable integer in [0, 1000).
//
// The hash is XXH64 over the UTF-8 bytes with seed 0. Changing it changes
// every categorical feature the model sees, so treat it as part of the model.
func EncodeString(s string) int {
	return int(xxhash.Sum64String(s) % EncodeModulus)
}

// EncodeInt passes a numeric value through unchanged.
func EncodeInt(v int) int {
	return v
}

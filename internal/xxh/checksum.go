// Package xxh computes fast, non-cryptographic fingerprints of decoded
// output volumes.
package xxh

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
//
// This has no role in decoding the wire format — crackle carries no
// checksums — but it gives callers and tests a cheap way to assert that
// two decodes of the same input produced bit-identical output (Testable
// Property 2, header determinism) without diffing the full buffer.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

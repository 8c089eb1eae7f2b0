package crackle

import (
	"testing"

	"github.com/dscout/crackle/header"
)

// FuzzDecompress checks bounds safety: no malformed or truncated input,
// however adversarial, should panic or read/write outside the provided
// buffers. Seeded with the header and single-voxel fixtures the unit
// tests already build, grounded in mrjoshuak-go-jpeg2000/fuzz_test.go's
// seed-corpus-plus-never-panic shape.
func FuzzDecompress(f *testing.F) {
	f.Add(singleVoxelInput())
	f.Add(singleVoxelInput()[:header.Size])
	f.Add(singleVoxelInput()[:header.Size-1])
	f.Add([]byte{})
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, input []byte) {
		output := make([]byte, 4096)

		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Decompress panicked on %d-byte input: %v", len(input), r)
			}
		}()

		_ = Decompress(input, output)
	})
}

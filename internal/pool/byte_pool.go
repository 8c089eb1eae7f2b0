// Package pool provides pooled, reusable byte and uint32 buffers for
// decode scratch space: the edge bitmap of a slice whose crack-code
// block is empty, and the z-index size array. The symbol stream, the
// edge bitmaps painted from contours and the component volume are
// allocated directly, not drawn from these pools.
package pool

import "sync"

var (
	bytePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
	uint32Pool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
)

// GetBytes retrieves a []byte of exact length size from the pool.
//
// The caller must call the returned cleanup function (typically via
// defer) to return the backing array to the pool. If the pooled slice's
// capacity is insufficient, a new one is allocated.
func GetBytes(size int) ([]byte, func()) {
	ptr, _ := bytePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { bytePool.Put(ptr) }
}

// GetUint32s retrieves a []uint32 of exact length size from the pool.
func GetUint32s(size int) ([]uint32, func()) {
	ptr, _ := uint32Pool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint32Pool.Put(ptr) }
}

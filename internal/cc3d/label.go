// Package cc3d colors a 3D passability bitmap into a dense connected
// components volume: a two-pass union-find scan with unconditional
// Z-stitching, since this wire format never encodes a vertical crack.
package cc3d

const (
	bitMinusY = 0b0001
	bitMinusX = 0b0100
)

// Label runs a two-pass union-find coloring over a stack of per-slice
// passability bitmaps (one sx*sy-length byte slice per Z, as produced
// by crackcode.Paint) and returns a flattened (z, y, x) component-id
// volume plus the number of distinct components N. ids has domain
// [0, N).
func Label(edgesPerSlice [][]byte, sx, sy, sz uint64) ([]uint32, uint32) {
	sxy := sx * sy
	total := sxy * sz

	uf := newUnionFind(int(total))

	for z := uint64(0); z < sz; z++ {
		slice := edgesPerSlice[z]
		base := z * sxy

		for y := uint64(0); y < sy; y++ {
			row := base + y*sx
			for x := uint64(0); x < sx; x++ {
				idx := row + x
				e := slice[y*sx+x]

				if x > 0 && e&bitMinusX != 0 {
					uf.union(uint32(idx), uint32(idx-1))
				}
				if y > 0 && e&bitMinusY != 0 {
					uf.union(uint32(idx), uint32(idx-sx))
				}
			}
		}

		if z > 0 {
			prevBase := (z - 1) * sxy
			for i := uint64(0); i < sxy; i++ {
				uf.union(uint32(base+i), uint32(prevBase+i))
			}
		}
	}

	ids := make([]uint32, total)
	remap := make(map[uint32]uint32)
	var next uint32

	for i := uint64(0); i < total; i++ {
		root := uf.find(uint32(i))

		id, ok := remap[root]
		if !ok {
			id = next
			remap[root] = id
			next++
		}

		ids[i] = id
	}

	return ids, next
}

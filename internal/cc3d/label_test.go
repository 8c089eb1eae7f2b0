package cc3d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelSingleVoxel(t *testing.T) {
	edges := [][]byte{{0}} // sx=sy=sz=1
	ids, n := Label(edges, 1, 1, 1)
	require.Equal(t, uint32(1), n)
	require.Equal(t, []uint32{0}, ids)
}

func TestLabelTwoSeparateColumns(t *testing.T) {
	// sx=2, sy=1, sz=1, no passability between x=0 and x=1 -> 2 components.
	edges := [][]byte{{0, 0}}
	ids, n := Label(edges, 2, 1, 1)
	require.Equal(t, uint32(2), n)
	require.Equal(t, []uint32{0, 1}, ids)
}

func TestLabelMergedRow(t *testing.T) {
	// sx=2, sy=1, sz=1, voxel 1 passable to -x -> merges with voxel 0.
	edges := [][]byte{{0, bitMinusX}}
	ids, n := Label(edges, 2, 1, 1)
	require.Equal(t, uint32(1), n)
	require.Equal(t, []uint32{0, 0}, ids)
}

func TestLabelZStitchingUnconditional(t *testing.T) {
	// sx=sy=1, sz=2: two isolated single-voxel slices always merge
	// across Z regardless of edge bits (no vertical crack is possible).
	edges := [][]byte{{0}, {0}}
	ids, n := Label(edges, 1, 1, 2)
	require.Equal(t, uint32(1), n)
	require.Equal(t, []uint32{0, 0}, ids)
}

func TestLabelComponentIDsFollowScanOrder(t *testing.T) {
	// sx=3, sy=1, sz=1, all three voxels isolated: ids must equal visit
	// order 0,1,2 in (z,y,x) scan order.
	edges := [][]byte{{0, 0, 0}}
	ids, n := Label(edges, 3, 1, 1)
	require.Equal(t, uint32(3), n)
	require.Equal(t, []uint32{0, 1, 2}, ids)
}

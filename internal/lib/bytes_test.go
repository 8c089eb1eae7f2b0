package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadUintLE(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	t.Run("width1", func(t *testing.T) {
		v, err := ReadUintLE(buf, 0, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(0x01), v)
	})

	t.Run("width2", func(t *testing.T) {
		v, err := ReadUintLE(buf, 0, 2)
		require.NoError(t, err)
		require.Equal(t, uint64(0x0201), v)
	})

	t.Run("width4", func(t *testing.T) {
		v, err := ReadUintLE(buf, 0, 4)
		require.NoError(t, err)
		require.Equal(t, uint64(0x04030201), v)
	})

	t.Run("width8", func(t *testing.T) {
		v, err := ReadUintLE(buf, 0, 8)
		require.NoError(t, err)
		require.Equal(t, uint64(0x0807060504030201), v)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ReadUintLE(buf, 6, 4)
		require.Error(t, err)
	})

	t.Run("unsupported width", func(t *testing.T) {
		_, err := ReadUintLE(buf, 0, 3)
		require.Error(t, err)
	})
}

func TestReadUintN(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0x01}

	t.Run("width1", func(t *testing.T) {
		v, err := ReadUintN(buf, 0, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(0xFF), v)
	})

	t.Run("width3", func(t *testing.T) {
		v, err := ReadUintN(buf, 0, 3)
		require.NoError(t, err)
		require.Equal(t, uint64(0x01FFFF), v)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ReadUintN(buf, 1, 3)
		require.Error(t, err)
	})

	t.Run("width out of domain", func(t *testing.T) {
		_, err := ReadUintN(buf, 0, 9)
		require.Error(t, err)
	})
}

func TestReadIntN(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		v, err := ReadIntN([]byte{0x7F}, 0, 1)
		require.NoError(t, err)
		require.Equal(t, int64(127), v)
	})

	t.Run("negative sign extends", func(t *testing.T) {
		v, err := ReadIntN([]byte{0xFF}, 0, 1)
		require.NoError(t, err)
		require.Equal(t, int64(-1), v)
	})

	t.Run("negative width2", func(t *testing.T) {
		v, err := ReadIntN([]byte{0xFE, 0xFF}, 0, 2)
		require.NoError(t, err)
		require.Equal(t, int64(-2), v)
	})
}

func TestByteWidth(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{256, 1},
		{257, 2},
		{65536, 2},
		{65537, 3},
		{1 << 32, 4},
		{1<<32 + 1, 5},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ByteWidth(c.n), "n=%d", c.n)
	}
}

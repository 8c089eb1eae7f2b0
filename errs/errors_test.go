package errs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, 0, CodeOf(nil))
	require.Equal(t, 1, CodeOf(ErrTruncatedHeader))
	require.Equal(t, 201, CodeOf(ErrCrackOutOfRangePermissible))
	require.Equal(t, -1, CodeOf(fmt.Errorf("some other error")))
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("parsing header: %w", ErrInvalidMagic)
	require.Equal(t, 2, CodeOf(wrapped))
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrackFormatValid(t *testing.T) {
	require.True(t, Impermissible.Valid())
	require.True(t, Permissible.Valid())
	require.False(t, CrackFormat(0xFF).Valid())
}

func TestLabelFormatValid(t *testing.T) {
	require.True(t, Flat.Valid())
	require.True(t, PinsFixedWidth.Valid())
	require.True(t, PinsVariableWidth.Valid())
	require.False(t, LabelFormat(0xFF).Valid())
}

func TestStringers(t *testing.T) {
	require.Equal(t, "Permissible", Permissible.String())
	require.Equal(t, "PinsVariableWidth", PinsVariableWidth.String())
	require.Equal(t, "Unknown", LabelFormat(9).String())
}

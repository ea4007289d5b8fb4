package utf8x_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nox-lang/nox/utf8x"
)

func TestWidth(t *testing.T) {
	require.Equal(t, 1, utf8x.Width('a'))
	require.Equal(t, 2, utf8x.Width(0xC2))
	require.Equal(t, 3, utf8x.Width(0xE2))
	require.Equal(t, 4, utf8x.Width(0xF0))
	require.Equal(t, 0, utf8x.Width(0x80)) // continuation byte
	require.Equal(t, 0, utf8x.Width(0xFF)) // invalid lead byte
}

func TestIsValidStart(t *testing.T) {
	require.True(t, utf8x.IsValidStart('z'))
	require.False(t, utf8x.IsValidStart(0x80))
}

func TestRuneWidth(t *testing.T) {
	require.Equal(t, 1, utf8x.RuneWidth('x'))
	require.Equal(t, 2, utf8x.RuneWidth('é'))
	require.Equal(t, 3, utf8x.RuneWidth('€'))
}

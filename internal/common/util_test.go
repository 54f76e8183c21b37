package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, size := range []int{0, 1, 16, 32} {
		s, err := MakeRandHexString(size)
		require.NoError(t, err)
		assert.Len(t, s, size*2)

		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, b, size)
	}

	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("bad-wolf")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, len("bad-wolf")), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword([]byte("allons-y"))
	require.NoError(t, err)
	assert.NotEqual(t, "allons-y", h)

	assert.True(t, CheckPassword(h, []byte("allons-y")))
	assert.False(t, CheckPassword(h, []byte("geronimo")))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	a, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(bytes.Repeat([]byte("x"), 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("not-bcrypt", []byte("pw")))
}

func TestBurnCompare_DoesNotPanic(t *testing.T) {
	BurnCompare([]byte("whatever"))
	BurnCompare(nil)
}

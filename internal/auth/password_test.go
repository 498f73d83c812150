package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, CheckPassword(hash, "correct-horse-battery"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

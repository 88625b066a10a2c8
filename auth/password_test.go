package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "Admin123", hash)

	// Hashes are salted; two hashes of the same input differ.
	hash2, err := HashPassword("Admin123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Admin123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("Admin123", hash))
	assert.False(t, CheckPassword("admin123", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("Admin123", "not-a-hash"))
}

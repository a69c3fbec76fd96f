package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(4) // min cost keeps the test fast

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestPasswordVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(4)
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-hash"))
}

func TestPasswordHasherCostClamped(t *testing.T) {
	h := NewPasswordHasher(99)
	assert.Equal(t, DefaultBcryptCost, h.cost)
}

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher()

	digest, err := hasher.Hash("123456")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "123456", digest)

	assert.True(t, hasher.Verify("123456", digest))
	assert.False(t, hasher.Verify("654321", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestBcryptHasher_DigestsAreSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("123456")
	require.NoError(t, err)
	second, err := hasher.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("123456", first))
	assert.True(t, hasher.Verify("123456", second))
}

func TestBcryptHasher_Verify_MalformedDigest(t *testing.T) {
	hasher := NewBcryptHasher()

	assert.False(t, hasher.Verify("123456", "not-a-bcrypt-digest"))
}

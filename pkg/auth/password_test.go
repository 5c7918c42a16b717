package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, IsLegacyHash(string(legacy)))

	ok, err := VerifyPassword("secret123", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	phc, err := HashPassword("hunter2", "pepper")
	require.NoError(t, err)
	assert.Contains(t, phc, "$argon2id$")

	ok, err := VerifyPassword("hunter2", "pepper", phc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", "pepper", phc)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword("hunter2", "other-pepper", phc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("", "pepper")
	assert.Error(t, err)
}

func TestVerifyPassword_BadFormat(t *testing.T) {
	for _, phc := range []string{"", "plaintext", "$bcrypt$whatever", "$argon2id$v=19$m=1024"} {
		_, err := VerifyPassword("x", "pepper", phc)
		assert.Error(t, err, "phc %q", phc)
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword("same", "pepper")
	require.NoError(t, err)
	b, err := HashPassword("same", "pepper")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

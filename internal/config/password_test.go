package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Default(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []string{"4", "9", "15", "31"} {
		t.Setenv("BCRYPT_COST", cost)

		_, err := NewPasswordConfig()
		require.Error(t, err, "cost %s should be rejected", cost)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

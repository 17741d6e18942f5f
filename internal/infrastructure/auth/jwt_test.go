package auth

import (
	"testing"
	"time"

	"github.com/markethub/products-api/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(ttl time.Duration) *Manager {
	return NewManager(config.AuthConfig{
		Secret:   "test-secret",
		Issuer:   "products-api-test",
		TokenTTL: ttl,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	m := newManager(time.Hour)

	token, err := m.Generate("seller-a", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "seller-a", claims.UserID)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "products-api-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "token id claim must be set")
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newManager(time.Hour)

	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newManager(time.Hour)
	other := NewManager(config.AuthConfig{Secret: "different-secret", Issuer: "x", TokenTTL: time.Hour})

	token, err := other.Generate("seller-a", "seller")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := newManager(-time.Minute)

	token, err := m.Generate("seller-a", "seller")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

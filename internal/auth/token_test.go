package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueParse(t *testing.T) {
	tk := NewTokens("test-secret", time.Hour)

	raw, err := tk.Issue("adm_1", RoleAdmin, "ops@tripora.dev")
	require.NoError(t, err)

	claims, err := tk.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "adm_1", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "ops@tripora.dev", claims.Email)
}

func TestTokens_WrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Issue("c_1", RoleCustomer, "x@y.z")
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Expired(t *testing.T) {
	raw, err := NewTokens("secret", -time.Minute).Issue("c_1", RoleCustomer, "x@y.z")
	require.NoError(t, err)

	_, err = NewTokens("secret", -time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth_test

import (
	"strings"
	"testing"

	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	svc := auth.New("admin", "tir2024")

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.Login("admin", "tir2024")
		require.NoError(t, err)
		assert.Equal(t, "admin", session.User.Username)
		assert.True(t, strings.HasPrefix(session.Token, "auth_token_"))
		assert.True(t, auth.ValidToken(session.Token))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("admin", "nope")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login("", "tir2024")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)

		_, err = svc.Login("admin", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})
}

func TestValidToken(t *testing.T) {
	assert.True(t, auth.ValidToken("auth_token_1700000000_ab12cd34"))

	assert.False(t, auth.ValidToken(""))
	assert.False(t, auth.ValidToken("bearer_123"))
	assert.False(t, auth.ValidToken("auth_token_"))
	assert.False(t, auth.ValidToken("auth_token_notatimestamp_abc"))
	assert.False(t, auth.ValidToken("auth_token_1700000000_"))
}

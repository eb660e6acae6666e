package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateJWT("user-42", domain.RoleParent, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.UserID)
	require.Equal(t, domain.RoleParent, claims.Role)
}

func TestGenerateJWT_RejectsBadInput(t *testing.T) {
	_, err := GenerateJWT("", domain.RoleParent, secret, time.Hour)
	require.Error(t, err)

	_, err = GenerateJWT("user", domain.RoleUnknown, secret, time.Hour)
	require.ErrorIs(t, err, domain.ErrUnknownRole)

	_, err = GenerateJWT("user", domain.RoleProvider, nil, time.Hour)
	require.Error(t, err)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWT("user", domain.RoleProvider, secret, time.Hour)
		require.NoError(t, err)
		_, err = ValidateToken(token, []byte("other"))
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "user",
			"role": "provider",
			"exp":  time.Now().Add(-time.Minute).Unix(),
		})
		signed, err := token.SignedString(secret)
		require.NoError(t, err)
		_, err = ValidateToken(signed, secret)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  "user",
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(secret)
		require.NoError(t, err)
		_, err = ValidateToken(signed, secret)
		require.ErrorIs(t, err, domain.ErrUnknownRole)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", secret)
		require.Error(t, err)
	})
}

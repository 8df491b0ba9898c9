package jwt

import (
	"testing"

	"github.com/ems-hq/ems-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "emp@example.com", user.RoleEmployee)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-1", userID)
	role, _ := token.Get("role")
	assert.Equal(t, "employee", role)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	tokenString, _, err := svc.GenerateRefreshToken("user-7")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	tokenString, _, err := svc.GenerateAccessToken("user-7", "emp@example.com", user.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestGenerateRefreshToken_Distinct(t *testing.T) {
	svc := NewJWTService(testSecret, testAccessExp, testRefreshExp)

	first, _, err := svc.GenerateRefreshToken("user-9")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-9")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

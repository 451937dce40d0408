package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	id := TokenIdentity{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Phone:    "0911000000",
		Name:     "Mimi",
		Role:     "staff",
	}

	token, err := m.GenerateAccessToken(id)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, claims.UserID)
	assert.Equal(t, id.TenantID, claims.TenantID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "Mimi", claims.Name)
}

func TestAccessTokenExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.GenerateAccessToken(TokenIdentity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour, time.Hour).GenerateAccessToken(TokenIdentity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenRejectsOtherSigningMethod(t *testing.T) {
	claims := &JWTClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = m.ValidateRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("448613")
	require.NoError(t, err)
	assert.NotEqual(t, "448613", hash)
	assert.True(t, CheckPasswordHash("448613", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

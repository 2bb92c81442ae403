package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "service-order-system/pkg/errors"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken("6f1c1f3e-7d8f-4b7c-9a55-0b8a4c1f2e11", "SHOP_SUPERVISOR")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "SHOP_SUPERVISOR", claims.Role)
	assert.Equal(t, "6f1c1f3e-7d8f-4b7c-9a55-0b8a4c1f2e11", claims.UserID)
}

func TestJWT_Expired(t *testing.T) {
	svc := &jwtService{SecretKey: "secret", TokenExp: time.Minute, now: func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}}
	token, err := svc.GenerateToken("u", "MANAGER")
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateToken("u", "MANAGER")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{Role: "MANAGER"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}

package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthService(testSecret, time.Hour)
	require.NoError(t, auth.CheckSecret())

	token, err := auth.GenerateToken("importer")
	require.NoError(t, err)

	sub, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "importer", sub)
}

func TestValidateToken_Rejects(t *testing.T) {
	auth := NewAuthService(testSecret, time.Hour)

	other := NewAuthService("ffffffffffffffffffffffffffffffff", time.Hour)
	foreign, err := other.GenerateToken("importer")
	require.NoError(t, err)
	_, err = auth.ValidateToken(foreign)
	assert.Error(t, err, "wrong secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "importer",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = auth.ValidateToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "importer", Issuer: issuer})
	signed, err = noExpiry.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = auth.ValidateToken(signed)
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateToken_Validation(t *testing.T) {
	_, err := NewAuthService(testSecret, time.Hour).GenerateToken("")
	assert.Error(t, err)

	_, err = NewAuthService(testSecret, 0).GenerateToken("importer")
	assert.Error(t, err)

	assert.Error(t, NewAuthService("short", time.Hour).CheckSecret())
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	service, err := sec.NewTokenServiceFromPEM(privatePEM, publicPEM, issuer)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies a signed access token carries its claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "digideck.test")

	token, err := service.GenerateAccessToken("user-1", "tamer", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tamer", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_Rejects covers expired tokens and tokens from another issuer.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "digideck.test")

	expired, err := service.GenerateAccessToken("user-1", "tamer", "member", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	foreign := newTokenService(t, "someone.else")
	token, err := foreign.GenerateAccessToken("user-1", "tamer", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(token)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("digivolve")
	require.NoError(t, err)

	assert.NotEqual(t, "digivolve", hash)
	assert.True(t, sec.CheckPasswordHash("digivolve", hash))
	assert.False(t, sec.CheckPasswordHash("dedigivolve", hash))
}

/*
TestUserRole_CanReadPrivate checks the admin override for private decks.
*/
func TestUserRole_CanReadPrivate(t *testing.T) {
	assert.True(t, sec.RoleAdmin.CanReadPrivate())
	assert.False(t, sec.RoleMember.CanReadPrivate())
	assert.False(t, sec.UserRole("").CanReadPrivate())
}

package testhelpers

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// NewRSAKey generates a throwaway signing key.
func NewRSAKey(t testing.TB) *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "Failed to generate RSA key")
	return key
}

// CreateJWT mints an access token the service's AuthMiddleware accepts.
func CreateJWT(t testing.TB, key *rsa.PrivateKey, subject, role string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err, "Failed to sign test JWT")
	return signed
}

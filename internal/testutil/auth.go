package testutil

import (
	"crypto/rsa"
	"testing"

	"github.com/alinea-commerce/crm-service/internal/auth"
)

// CreateTestVerifier creates a verifier configured for E2E testing
// It returns the verifier and the private key to sign test tokens
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	privateKey, publicKey := GenerateTestKeyPair(t)

	// JWKS preloaded with the test key, so no Keycloak is needed
	testJWKS := auth.NewTestJWKS(publicKey)

	cfg := auth.Config{
		Issuer: "https://test-keycloak.com/realms/test",
	}

	return auth.NewVerifier(cfg, testJWKS), privateKey
}

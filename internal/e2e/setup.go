//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/alinea-commerce/crm-service/internal/auth"
	httpserver "github.com/alinea-commerce/crm-service/internal/http"
	"github.com/alinea-commerce/crm-service/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest creates a complete test environment for E2E testing:
// a real PostgreSQL database, a real HTTP server with all routes, an
// in-memory RabbitMQ publisher and a test JWT verifier with its signing key.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mockPublisher := testutil.NewMockPublisher()

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	verifier, privateKey := testutil.CreateTestVerifier(t)

	router := httpserver.SetupRouter(db, mockPublisher, verifier, perms)
	server := httptest.NewServer(router)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
		PrivateKey:    privateKey,
	}
}

// Cleanup cleans up all test resources
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	ts.Server.Close()
	testutil.CleanupTestDB(t, ts.DB)
}

// AdminClient returns an HTTP client authenticated as an ADMIN user
func (ts *TestServer) AdminClient(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	token := testutil.GenerateAdminToken(t, ts.PrivateKey)
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}

// StaffClient returns an HTTP client authenticated as a STAFF user
func (ts *TestServer) StaffClient(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	token := testutil.GenerateStaffToken(t, ts.PrivateKey)
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}

package auth

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadPermissions_Success tests loading a valid permissions file
func TestLoadPermissions_Success(t *testing.T) {
	content := `roles:
  ADMIN:
    - customer:create
    - customer:delete
    - product:restock
  STAFF:
    - customer:view
    - order:create
`
	path := filepath.Join(t.TempDir(), "permissions.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write permissions file: %v", err)
	}

	perms, err := LoadPermissions(path)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(perms["ADMIN"]) != 3 {
		t.Errorf("Expected 3 ADMIN permissions, got %d", len(perms["ADMIN"]))
	}
	if len(perms["STAFF"]) != 2 {
		t.Errorf("Expected 2 STAFF permissions, got %d", len(perms["STAFF"]))
	}
}

// TestLoadPermissions_FileNotFound tests missing file handling
func TestLoadPermissions_FileNotFound(t *testing.T) {
	perms, err := LoadPermissions("/nonexistent/permissions.yml")

	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
	if perms != nil {
		t.Error("Expected nil permissions")
	}
}

// TestLoadPermissions_InvalidYAML tests malformed file handling
func TestLoadPermissions_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.yml")
	if err := os.WriteFile(path, []byte("roles: [not: valid"), 0o644); err != nil {
		t.Fatalf("Failed to write permissions file: %v", err)
	}

	_, err := LoadPermissions(path)

	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

// TestHasPermission_Granted tests a role that carries the permission
func TestHasPermission_Granted(t *testing.T) {
	perms := Permissions{
		"ADMIN": {"customer:create", "customer:delete"},
		"STAFF": {"customer:view"},
	}
	pr := &Principal{UserID: "user-123", Roles: []string{"STAFF"}}

	if !HasPermission(pr, "customer:view", perms) {
		t.Error("Expected STAFF to have customer:view")
	}
	if HasPermission(pr, "customer:delete", perms) {
		t.Error("Expected STAFF to not have customer:delete")
	}
}

// TestHasPermission_CaseInsensitiveRole tests lowercase realm roles match
// uppercase permission entries
func TestHasPermission_CaseInsensitiveRole(t *testing.T) {
	perms := Permissions{
		"ADMIN": {"product:restock"},
	}
	pr := &Principal{UserID: "user-123", Roles: []string{"admin"}}

	if !HasPermission(pr, "product:restock", perms) {
		t.Error("Expected lowercase 'admin' role to match ADMIN permissions")
	}
}

// TestHasPermission_NoRoles tests a principal with no roles
func TestHasPermission_NoRoles(t *testing.T) {
	perms := Permissions{
		"ADMIN": {"customer:create"},
	}
	pr := &Principal{UserID: "user-123"}

	if HasPermission(pr, "customer:create", perms) {
		t.Error("Expected no permission for principal without roles")
	}
}

// TestHasPermission_UnknownRole tests a role absent from the mapping
func TestHasPermission_UnknownRole(t *testing.T) {
	perms := Permissions{
		"ADMIN": {"customer:create"},
	}
	pr := &Principal{UserID: "user-123", Roles: []string{"VISITOR"}}

	if HasPermission(pr, "customer:create", perms) {
		t.Error("Expected no permission for unknown role")
	}
}

package helpers

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := SignAdminToken("test-secret", RoleDepartmentAdmin, "cse", time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	claims, err := ParseAdminToken(token, "test-secret")
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	if claims.Role != RoleDepartmentAdmin {
		t.Errorf("Expected role %q, got %q", RoleDepartmentAdmin, claims.Role)
	}
	if claims.Department != "cse" {
		t.Errorf("Expected department cse, got %q", claims.Department)
	}
	if !claims.IsDepartmentAdmin() {
		t.Error("Expected IsDepartmentAdmin to be true")
	}
	if claims.IsMainAdmin() {
		t.Error("Expected IsMainAdmin to be false")
	}
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, err := SignAdminToken("department-secret", RoleDepartmentAdmin, "cse", time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	// A department token must never verify against the main admin secret.
	if _, err := ParseAdminToken(token, "main-secret"); err == nil {
		t.Error("Expected parse to fail with wrong secret")
	}
}

func TestAdminTokenExpired(t *testing.T) {
	token, err := SignAdminToken("test-secret", RoleMainAdmin, "", -time.Minute)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	if _, err := ParseAdminToken(token, "test-secret"); err == nil {
		t.Error("Expected parse to fail for expired token")
	}
}

func TestMainAdminClaims(t *testing.T) {
	token, err := SignAdminToken("test-secret", RoleMainAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	claims, err := ParseAdminToken(token, "test-secret")
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	if !claims.IsMainAdmin() {
		t.Error("Expected IsMainAdmin to be true")
	}
	if claims.IsDepartmentAdmin() {
		t.Error("Expected IsDepartmentAdmin to be false")
	}
}

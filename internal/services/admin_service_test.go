package services

import (
	"errors"
	"testing"

	"github.com/devnandu/festserver/internal/config"
	"github.com/devnandu/festserver/internal/helpers"
	"github.com/devnandu/festserver/internal/models"
)

func testAdminConfig() *config.Config {
	return &config.Config{
		AdminCredentials: map[string]config.AdminCredential{
			"cse": {Username: "cse_admin", Password: "cse-pass"},
			"ece": {Username: "ece_admin", Password: "ece-pass"},
		},
		MainAdminUsername:  "festadmin",
		MainAdminPassword:  "fest-pass",
		AdminJWTSecret:     "dept-secret",
		MainAdminJWTSecret: "main-secret",
		AdminTokenTTLHours: 24,
	}
}

func TestLoginDepartment(t *testing.T) {
	as := NewAdminService(testAdminConfig())

	token, department, err := as.LoginDepartment("ece_admin", "ece-pass")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if department != "ece" {
		t.Errorf("Expected department ece, got %q", department)
	}

	claims, err := helpers.ParseAdminToken(token, "dept-secret")
	if err != nil {
		t.Fatalf("Failed to parse issued token: %v", err)
	}
	if claims.Department != "ece" {
		t.Errorf("Expected department claim ece, got %q", claims.Department)
	}
	if !claims.IsDepartmentAdmin() {
		t.Error("Expected a department admin token")
	}
}

func TestLoginDepartmentBadCredentials(t *testing.T) {
	as := NewAdminService(testAdminConfig())

	if _, _, err := as.LoginDepartment("cse_admin", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
	}

	// Username/password pairs must not mix across departments.
	if _, _, err := as.LoginDepartment("cse_admin", "ece-pass"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for crossed pair, got: %v", err)
	}
}

func TestLoginMain(t *testing.T) {
	as := NewAdminService(testAdminConfig())

	token, err := as.LoginMain("festadmin", "fest-pass")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims, err := helpers.ParseAdminToken(token, "main-secret")
	if err != nil {
		t.Fatalf("Failed to parse issued token: %v", err)
	}
	if !claims.IsMainAdmin() {
		t.Error("Expected a main admin token")
	}

	// A main token must never verify against the department secret.
	if _, err := helpers.ParseAdminToken(token, "dept-secret"); err == nil {
		t.Error("Expected main token to fail against department secret")
	}
}

func TestLoginMainBadCredentials(t *testing.T) {
	as := NewAdminService(testAdminConfig())

	if _, err := as.LoginMain("festadmin", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got: %v", err)
	}
}

package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_URL_ANON_KEY", "anon-key")
	t.Setenv("ADMIN_JWT_SECRET", "dept-secret")
	t.Setenv("MAIN_ADMIN_JWT_SECRET", "main-secret")
	t.Setenv("MAIN_ADMIN_USERNAME", "festadmin")
	t.Setenv("MAIN_ADMIN_PASSWORD", "fest-pass")
	t.Setenv("ADMIN_CREDENTIALS", `{"cse":{"username":"cse_admin","password":"pw1"},"ece":{"username":"ece_admin","password":"pw2"}}`)
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.MongoDBName != "fest" {
		t.Errorf("Expected default db name fest, got %q", cfg.MongoDBName)
	}
	if cfg.AdminTokenTTLHours != 24 {
		t.Errorf("Expected default TTL 24, got %d", cfg.AdminTokenTTLHours)
	}
	if len(cfg.AdminCredentials) != 2 {
		t.Fatalf("Expected 2 department credentials, got %d", len(cfg.AdminCredentials))
	}
	if cfg.AdminCredentials["cse"].Username != "cse_admin" {
		t.Errorf("Credential table not parsed: %+v", cfg.AdminCredentials)
	}
}

func TestLoadConfigBadCredentialJSON(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_CREDENTIALS", "not json")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for malformed ADMIN_CREDENTIALS")
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error when ADMIN_JWT_SECRET is missing")
	}
}

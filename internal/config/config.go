package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// AdminCredential is one entry of the department admin credential table.
type AdminCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string

	SupabaseURL     string
	SupabaseAnonKey string

	// Department admins are a static table injected at startup, keyed by
	// department slug (e.g. "cse"). Main admin is a single credential pair.
	AdminCredentials  map[string]AdminCredential
	MainAdminUsername string
	MainAdminPassword string

	// Two independent signing domains: a department token never verifies
	// against the main secret and vice versa.
	AdminJWTSecret     string
	MainAdminJWTSecret string
	AdminTokenTTLHours int

	IdentityWebhookSecret string

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
}

func LoadConfig() (*Config, error) {
	ttl, _ := strconv.Atoi(getEnvWithDefault("ADMIN_TOKEN_TTL_HOURS", "24"))

	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:     getEnvWithDefault("MONGODB_DB_NAME", "fest"),

		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_URL_ANON_KEY"),

		MainAdminUsername: os.Getenv("MAIN_ADMIN_USERNAME"),
		MainAdminPassword: os.Getenv("MAIN_ADMIN_PASSWORD"),

		AdminJWTSecret:     os.Getenv("ADMIN_JWT_SECRET"),
		MainAdminJWTSecret: os.Getenv("MAIN_ADMIN_JWT_SECRET"),
		AdminTokenTTLHours: ttl,

		IdentityWebhookSecret: os.Getenv("IDENTITY_WEBHOOK_SECRET"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
	}

	if raw := os.Getenv("ADMIN_CREDENTIALS"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.AdminCredentials); err != nil {
			return nil, fmt.Errorf("ADMIN_CREDENTIALS is not valid JSON: %v", err)
		}
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}
	if cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if cfg.MainAdminJWTSecret == "" {
		return nil, fmt.Errorf("MAIN_ADMIN_JWT_SECRET is required")
	}
	if len(cfg.AdminCredentials) == 0 {
		return nil, fmt.Errorf("ADMIN_CREDENTIALS is required")
	}
	if cfg.MainAdminUsername == "" || cfg.MainAdminPassword == "" {
		return nil, fmt.Errorf("MAIN_ADMIN_USERNAME and MAIN_ADMIN_PASSWORD are required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

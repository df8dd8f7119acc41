package services

import (
	"fmt"
	"time"

	"github.com/devnandu/festserver/internal/config"
	"github.com/devnandu/festserver/internal/helpers"
	"github.com/devnandu/festserver/internal/models"
)

// AdminService issues the two admin token flavors from the credential
// table injected at startup. It holds no mutable state.
type AdminService struct {
	cfg *config.Config
}

func NewAdminService(cfg *config.Config) *AdminService {
	return &AdminService{cfg: cfg}
}

func (as *AdminService) tokenTTL() time.Duration {
	hours := as.cfg.AdminTokenTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// LoginDepartment matches the credential pair against the department table
// and returns a department-scoped token plus the matched department.
func (as *AdminService) LoginDepartment(username, password string) (string, string, error) {
	department := ""
	for dept, creds := range as.cfg.AdminCredentials {
		if creds.Username == username && creds.Password == password {
			department = dept
			break
		}
	}
	if department == "" {
		return "", "", models.ErrInvalidCredentials
	}

	token, err := helpers.SignAdminToken(as.cfg.AdminJWTSecret, helpers.RoleDepartmentAdmin, department, as.tokenTTL())
	if err != nil {
		return "", "", fmt.Errorf("failed to issue department token: %v", err)
	}
	return token, department, nil
}

func (as *AdminService) LoginMain(username, password string) (string, error) {
	if username != as.cfg.MainAdminUsername || password != as.cfg.MainAdminPassword {
		return "", models.ErrInvalidCredentials
	}

	token, err := helpers.SignAdminToken(as.cfg.MainAdminJWTSecret, helpers.RoleMainAdmin, "", as.tokenTTL())
	if err != nil {
		return "", fmt.Errorf("failed to issue main admin token: %v", err)
	}
	return token, nil
}

package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleDepartmentAdmin = "admin"
	RoleMainAdmin       = "main-admin"
)

// AdminClaims is the claim set of both admin token flavors. Department is
// set only on department tokens; the two flavors are signed with
// independent secrets and never verify against each other.
type AdminClaims struct {
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

func SignAdminToken(secret, role, department string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role:       role,
		Department: department,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %v", err)
	}
	return signed, nil
}

func ParseAdminToken(tokenStr, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func (ac *AdminClaims) IsMainAdmin() bool {
	return ac.Role == RoleMainAdmin
}

func (ac *AdminClaims) IsDepartmentAdmin() bool {
	return ac.Role == RoleDepartmentAdmin && ac.Department != ""
}

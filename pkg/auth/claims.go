// Package auth validates bearer tokens and carries the caller's claims
// through request contexts.
package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims presented by risk engine callers.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims include at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Role constants
const (
	RoleAdmin             = "admin"
	RoleContractManager   = "contract_manager"
	RoleComplianceOfficer = "compliance_officer"
	RoleAuditor           = "auditor"
	RoleViewer            = "viewer"
)

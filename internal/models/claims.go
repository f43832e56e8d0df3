package models

import "github.com/golang-jwt/jwt/v5"

// Session roles
const (
	RoleCompanyAdmin = "company_admin"
	RoleEmployee     = "employee"
	RolePartner      = "partner"
)

// SessionClaims identifies who is acting and on whose behalf.
type SessionClaims struct {
	jwt.RegisteredClaims
	ActorID    string `json:"actor_id"`
	Role       string `json:"role"`
	CompanyID  string `json:"company_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	PartnerID  string `json:"partner_id,omitempty"`
}

// HasRole checks if the claims carry one of roles.
func (c *SessionClaims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

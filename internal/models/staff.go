package models

import "github.com/golang-jwt/jwt/v5"

const RoleStaff = "staff"

// StaffClaims are carried by the bearer tokens that unlock the order dashboard.
type StaffClaims struct {
	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

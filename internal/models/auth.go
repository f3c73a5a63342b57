package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are embedded in session tokens issued at login.
type JWTClaims struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

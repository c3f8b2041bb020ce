package models

import "github.com/golang-jwt/jwt/v5"

// TokenResponse returns the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// JWTClaims is the access-token payload. Only the user id travels in the
// token; the role is resolved from the database on every request so that
// flag changes take effect immediately.
type JWTClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller attached to the request context.
type Identity struct {
	UserID int
	Role   Role
}

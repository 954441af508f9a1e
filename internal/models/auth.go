package models

import "github.com/golang-jwt/jwt/v5"

// TokenRequest carries the identity claims exchanged for an access token on
// first sign-in. There is no password flow; identity is asserted upstream.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse returns the signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// JWTClaims represents the JWT payload for access tokens. The persisted role
// is deliberately not embedded: route guards re-resolve it per request so a
// role change takes effect without re-issuing tokens.
type JWTClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

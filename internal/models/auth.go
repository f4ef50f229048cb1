package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the verified caller supplied by the identity provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IdentityClaims represents the payload of an identity token. The subject carries the uid.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

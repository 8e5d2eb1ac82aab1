// Package identity is the single session/identity abstraction every
// authenticated request resolves to.
//
// Two verifiers feed it: locally-issued credential JWTs for back-office
// admins, and the hosted identity provider (Clerk) for end users. Whatever
// the source, the auth middleware stores one Identity in the request
// context and authorization decisions read only that. Roles are claims on
// the identity, never hard-coded email comparisons.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider names the scheme an identity was established by.
type Provider string

const (
	ProviderLocal Provider = "local"
	ProviderClerk Provider = "clerk"
)

// Role is the coarse authorization role carried by an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity describes an authenticated caller.
type Identity struct {
	// Subject is the caller's stable id: the admin row id for local
	// identities, the Clerk subject for hosted ones.
	Subject    string
	Email      string
	Role       Role
	SuperAdmin bool
	Provider   Provider
}

// IsAdmin reports whether the identity may access back-office routes.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

var (
	// ErrInvalidToken signals a token that failed parsing or signature
	// verification, or one missing required claims.
	ErrInvalidToken = errors.New("identity: invalid token")
)

// TokenIssuer mints and verifies the locally-signed admin session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer signing with the given HMAC secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed session token for an admin identity.
func (ti *TokenIssuer) Issue(subject, email string, superAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         subject,
		"email":       email,
		"role":        string(RoleAdmin),
		"super_admin": superAdmin,
		"iat":         now.Unix(),
		"exp":         now.Add(ti.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("identity: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a locally-issued token, returning the
// Identity it carries.
func (ti *TokenIssuer) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return Identity{}, ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok || Role(roleStr) != RoleAdmin {
		return Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	superAdmin, _ := claims["super_admin"].(bool)

	return Identity{
		Subject:    subject,
		Email:      email,
		Role:       Role(roleStr),
		SuperAdmin: superAdmin,
		Provider:   ProviderLocal,
	}, nil
}

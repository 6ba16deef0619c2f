// Package jwttoken validates the bearer tokens office users present to the
// history API. This service never mints tokens; the identity provider does.
package jwttoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"movehistory/internal/platform/middleware"
)

// Claims are the custom claims carried in an office user's access token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Validator parses and verifies HS256 access tokens.
type Validator struct {
	signingKey []byte
	issuer     string
}

// NewValidator constructs a token validator.
func NewValidator(signingKey, issuer string) *Validator {
	return &Validator{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// ValidateToken verifies the token signature, expiry, and issuer, and returns
// the claims the auth middleware stores in the request context.
func (v *Validator) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == "" {
		return nil, errors.New("token missing user_id claim")
	}
	return &middleware.JWTClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}

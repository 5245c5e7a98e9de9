package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the vendor-issued token this service cares about.
type Claims struct {
	Sub   string
	Email string
	Role  string
}

var ErrInvalidToken = errors.New("invalid token")

// VerifyJWT validates an HS256 access token (the shape Supabase auth issues)
// and returns its identity claims. Token issuance and refresh live with the
// auth vendor, not here.
func VerifyJWT(token, secret string) (Claims, error) {
	if strings.TrimSpace(secret) == "" {
		return Claims{}, fmt.Errorf("%w: verifier not configured", ErrInvalidToken)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	claims := Claims{Sub: sub}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	return claims, nil
}

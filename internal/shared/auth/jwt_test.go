package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyJWT(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "reader@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	claims, err := VerifyJWT(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Errorf("expected sub user-1, got %s", claims.Sub)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("expected email, got %s", claims.Email)
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "user-1"}, "other-secret")
	if _, err := VerifyJWT(token, testSecret); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)
	if _, err := VerifyJWT(token, testSecret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyJWTRejectsMissingSub(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"email": "x@example.com"}, testSecret)
	if _, err := VerifyJWT(token, testSecret); err == nil {
		t.Fatal("expected error for missing sub")
	}
}

func TestVerifyJWTRejectsWhenUnconfigured(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "user-1"}, testSecret)
	if _, err := VerifyJWT(token, ""); err == nil {
		t.Fatal("expected error when secret is empty")
	}
}

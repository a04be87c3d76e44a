package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("test-secret", 42, "OWNER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}
	if remaining := time.Until(tok.Exp); remaining < 14*time.Minute || remaining > 15*time.Minute {
		t.Fatalf("expiry %v not ~15 minutes out", tok.Exp)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a map")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "OWNER" {
		t.Fatalf("role = %v, want OWNER", claims["role"])
	}

	if _, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	}); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Fatal("wrong password accepted")
	}
}

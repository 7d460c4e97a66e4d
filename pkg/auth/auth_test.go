package auth

import (
	"strings"
	"testing"

	"github.com/arnavshah/seatplan-api/pkg/config"
)

func TestHMACKey(t *testing.T) {
	Init(config.Config{APIMasterSecret: "master"})

	key := GenerateHMACKey("exam-cell")
	if !strings.HasPrefix(key, "exam-cell.") {
		t.Fatalf("Unexpected key format %q", key)
	}

	name, err := VerifyHMACKey(key)
	if err != nil || name != "exam-cell" {
		t.Errorf("VerifyHMACKey() = %q, %v", name, err)
	}

	tests := []struct {
		name string
		key  string
	}{
		{"no separator", "exam-cell"},
		{"empty name", "." + strings.Repeat("a", 64)},
		{"empty signature", "exam-cell."},
		{"tampered name", "exam-hall" + key[len("exam-cell"):]},
		{"other secret", SignKey("exam-cell", []byte("other"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyHMACKey(tt.key); err == nil {
				t.Errorf("Expected %q to be rejected", tt.key)
			}
		})
	}
}

func TestHMACKey_NameWithDots(t *testing.T) {
	Init(config.Config{APIMasterSecret: "master"})

	name, err := VerifyHMACKey(GenerateHMACKey("dept.civil"))
	if err != nil || name != "dept.civil" {
		t.Errorf("VerifyHMACKey() = %q, %v", name, err)
	}
}

func TestToken(t *testing.T) {
	Init(config.Config{JWTSecret: "jwt-secret"})

	token, err := CreateToken("admin")
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	claims, err := VerifyToken(token)
	if err != nil || claims.Username != "admin" {
		t.Errorf("VerifyToken() = %+v, %v", claims, err)
	}

	Init(config.Config{JWTSecret: "rotated"})
	if _, err := VerifyToken(token); err == nil {
		t.Errorf("Expected a token signed with the old secret to be rejected")
	}
	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Errorf("Expected garbage to be rejected")
	}
}

func TestPasswordHash(t *testing.T) {
	bcryptCost = 4
	defer func() { bcryptCost = 14 }()

	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPasswordHash("admin123", hash) {
		t.Errorf("Expected password to match its hash")
	}
	if CheckPasswordHash("admin124", hash) {
		t.Errorf("Expected a different password to be rejected")
	}
}

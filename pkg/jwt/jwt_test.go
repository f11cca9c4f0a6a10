package jwt

import (
	"testing"
	"time"

	"hospital-management-server/config"

	"github.com/google/uuid"
)

func testService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	s := testService("test-secret")
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "doc@example.com", 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a token ID")
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user ID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "doc@example.com" {
		t.Fatalf("email = %s", claims.Email)
	}
	if claims.RoleID != 2 {
		t.Fatalf("role ID = %d, want 2", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Fatalf("token type = %s, want %s", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("token ID = %s, want %s", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	s := testService("test-secret")

	token, _, err := s.GenerateRefreshToken(uuid.New(), "a@b.c", 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Fatalf("token type = %s, want %s", claims.TokenType, RefreshToken)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := testService("secret-a").GenerateAccessToken(uuid.New(), "a@b.c", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := testService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := testService("s").ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	s := testService("test-secret")
	userID := uuid.New()

	_, first, err := s.GenerateAccessToken(userID, "a@b.c", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_, second, err := s.GenerateAccessToken(userID, "a@b.c", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct token IDs for successive tokens")
	}
}

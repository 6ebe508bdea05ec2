package auth

import (
	"testing"
	"time"

	"carelink/internal/models"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Generate(42, models.RoleCSR)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	ident, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ident.UserID != 42 {
		t.Errorf("UserID: expected 42, got %d", ident.UserID)
	}
	if ident.Role != models.RoleCSR {
		t.Errorf("Role: expected %q, got %q", models.RoleCSR, ident.Role)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Generate(1, models.RolePIN)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := tokens.Validate(signed); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Generate(1, models.RolePIN)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewTokens("secret-b", time.Hour).Validate(signed); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

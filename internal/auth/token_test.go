package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	// Arrange
	tm := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: "user-1", Role: domain.RoleSupervisor}

	// Act
	token, expiresAt, err := tm.GenerateToken(user)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry off: %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != domain.RoleSupervisor {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleAgent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token with wrong signature accepted")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken(&domain.User{ID: "user-1", Role: domain.RoleAgent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tm.ParseToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     domain.Role
		required domain.Role
		want     bool
	}{
		{domain.RoleAdmin, domain.RoleAgent, true},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleSupervisor, domain.RoleAgent, true},
		{domain.RoleSupervisor, domain.RoleAdmin, false},
		{domain.RoleAgent, domain.RoleSupervisor, false},
		{domain.Role("ghost"), domain.RoleAgent, false},
	}

	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.required); got != tc.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

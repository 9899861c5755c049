// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/societly/server/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter2" {
		t.Error("HashPassword() returned the plaintext")
	}

	if err := CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("CheckPassword() rejected the correct password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}

	// Hashing is salted; two hashes of the same input differ
	hash2, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() produced identical hashes for the same input")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-token-secret"
	p := models.Principal{
		ID:        "resident-1",
		Role:      models.RoleAdmin,
		SocietyID: "society-1",
	}

	token, err := IssueToken(p, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	parsed, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if parsed != p {
		t.Errorf("ParseToken() = %+v, want %+v", parsed, p)
	}
}

func TestParseTokenRejections(t *testing.T) {
	secret := "test-token-secret"
	p := models.Principal{ID: "resident-1", Role: models.RoleResident, SocietyID: "society-1"}

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := IssueToken(p, secret, time.Hour)
		if _, err := ParseToken(token, "another-secret"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := IssueToken(p, secret, -time.Minute)
		if _, err := ParseToken(token, secret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := ParseToken("not.a.token", secret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestPrincipalFromRequest(t *testing.T) {
	secret := "test-token-secret"
	p := models.Principal{ID: "resident-1", Role: models.RoleResident, SocietyID: "society-1"}
	token, err := IssueToken(p, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	t.Run("valid bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/polls", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		parsed, err := PrincipalFromRequest(r, secret)
		if err != nil {
			t.Fatalf("PrincipalFromRequest() error = %v", err)
		}
		if parsed != p {
			t.Errorf("PrincipalFromRequest() = %+v, want %+v", parsed, p)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/polls", nil)
		if _, err := PrincipalFromRequest(r, secret); !errors.Is(err, ErrMissingToken) {
			t.Errorf("Expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/polls", nil)
		r.Header.Set("Authorization", "Basic "+token)
		if _, err := PrincipalFromRequest(r, secret); err == nil {
			t.Error("Expected an error for a non-bearer authorization header")
		}
	})
}

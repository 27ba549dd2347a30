package util

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-123")

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	subject, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = VerifyToken([]byte("another-secret"), token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, err = VerifyToken(testSecret, token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := VerifyToken(testSecret, tokenString); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tokenString, err)
		}
	}
}

func TestVerifyTokenEmptySubject(t *testing.T) {
	token, err := IssueToken(testSecret, "", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := VerifyToken(testSecret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty subject, got %v", err)
	}
}

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Now()
	token, err := signHS256(map[string]any{
		"sub":   "user-1",
		"email": "ayu@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := parseHS256(token, secret, now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ayu@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Now()
	token, err := signHS256(map[string]any{"sub": "user-1", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix()}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + b64.EncodeToString([]byte(`{"sub":"user-2"}`)) + "." + parts[2]

	if _, err := parseHS256(tampered, secret, now); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
	if _, err := parseHS256("not-a-token", secret, now); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken for garbage, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Now()
	token, err := signHS256(map[string]any{"sub": "user-1", "iat": now.Add(-2 * time.Hour).Unix(), "exp": now.Add(-time.Hour).Unix()}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := parseHS256(token, secret, now); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

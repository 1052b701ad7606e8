package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var b64 = base64.RawURLEncoding

var (
	// ErrMalformedToken covers structural problems: wrong segment count,
	// bad encoding, signature mismatch.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned when the exp claim is in the past.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the fields carried inside an access token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// signHS256 creates a compact JWT string using HS256.
func signHS256(claims map[string]any, secret []byte) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	unsigned := b64.EncodeToString(header) + "." + b64.EncodeToString(payload)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return unsigned + "." + b64.EncodeToString(mac.Sum(nil)), nil
}

// parseHS256 verifies the token signature and expiry and returns its claims.
func parseHS256(token string, secret []byte, now time.Time) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformedToken
	}
	sig, err := b64.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return Claims{}, ErrMalformedToken
	}
	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var raw struct {
		Sub   string  `json:"sub"`
		Email string  `json:"email"`
		Iat   float64 `json:"iat"`
		Exp   float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, ErrMalformedToken
	}
	claims := Claims{
		UserID:    raw.Sub,
		Email:     raw.Email,
		IssuedAt:  time.Unix(int64(raw.Iat), 0),
		ExpiresAt: time.Unix(int64(raw.Exp), 0),
	}
	if claims.UserID == "" {
		return Claims{}, ErrMalformedToken
	}
	if !now.Before(claims.ExpiresAt) {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}

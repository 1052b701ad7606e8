package auth

import (
	"context"
	"time"

	"github.com/dermalyze/dermalyze/internal/config"
	"github.com/dermalyze/dermalyze/internal/identity"
)

// Service issues, verifies and revokes bearer tokens.
type Service struct {
	cfg      config.Config
	registry RevocationRegistry
}

// NewService creates an auth service backed by the given revocation registry.
func NewService(cfg config.Config, registry RevocationRegistry) *Service {
	return &Service{cfg: cfg, registry: registry}
}

// Login signs an access token for the authenticated user.
func (s *Service) Login(user identity.User) (string, error) {
	now := time.Now()
	claims := map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}
	return signHS256(claims, []byte(s.cfg.JWTSecret))
}

// Verify checks the token's signature and expiry and returns its claims.
// It does not consult the revocation registry; callers check that first so
// a revoked token is rejected even when structurally valid.
func (s *Service) Verify(token string) (Claims, error) {
	return parseHS256(token, []byte(s.cfg.JWTSecret), time.Now())
}

// Logout revokes the token. Safe to call repeatedly with the same token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.registry.Revoke(ctx, token)
}

// IsRevoked reports whether the token has been explicitly revoked.
func (s *Service) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.registry.IsRevoked(ctx, token)
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dermalyze/dermalyze/internal/auth"
	"github.com/dermalyze/dermalyze/internal/identity"
)

// Locals keys set by Auth for downstream handlers.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// Auth guards protected routes. Order matters: the revocation registry is
// consulted before signature verification so a revoked token is rejected
// even while structurally valid. Resolving the principal also bumps the
// user's last-seen timestamp; that side effect is deliberate and idempotent
// under retry. Every rejection surfaces the same generic 401, the specific
// reason goes to the log only.
func Auth(svc *auth.Service, users identity.Repository, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return reject(c, logger, "no token")
		}

		revoked, err := svc.IsRevoked(c.UserContext(), token)
		if err != nil {
			// Fail closed: an unreachable registry must not let a
			// possibly-revoked token through.
			return reject(c, logger, "registry unavailable: "+err.Error())
		}
		if revoked {
			return reject(c, logger, "revoked")
		}

		claims, err := svc.Verify(token)
		if err != nil {
			return reject(c, logger, "invalid token: "+err.Error())
		}

		user, err := users.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			return reject(c, logger, "no principal: "+err.Error())
		}
		if err := users.Touch(c.UserContext(), user.ID); err != nil && logger != nil {
			logger.Warn("touch principal", "user_id", user.ID, "error", err)
		}

		c.Locals(UserIDKey, user.ID)
		c.Locals(UserEmailKey, user.Email)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, logger *slog.Logger, reason string) error {
	if logger != nil {
		logger.Info("request rejected",
			slog.String("path", c.Path()),
			slog.String("reason", reason),
		)
	}
	return fiber.NewError(http.StatusUnauthorized, "Unauthorized")
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"orion/internal/auth"
)

const (
	// UserIDLocalKey holds the authenticated user's id (int64).
	UserIDLocalKey = "user_id"
	// ClaimsLocalKey holds the verified *auth.Claims.
	ClaimsLocalKey = "claims"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid, unrevoked bearer token with 401.
// On success the user id and claims are stored in locals.
func RequireAuth(parser TokenParser, revoker auth.Revoker, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := parser.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		revoked, err := revoker.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			log.WithError(err).WithField("request_id", RequestIDFromCtx(c)).Error("revocation lookup failed")
			return fiber.ErrServiceUnavailable
		}
		if revoked {
			return fiber.NewError(fiber.StatusUnauthorized, "token has been revoked")
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// UserIDFromCtx returns the id stored by RequireAuth.
func UserIDFromCtx(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(UserIDLocalKey).(int64)
	return id, ok
}

// ClaimsFromCtx returns the claims stored by RequireAuth, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

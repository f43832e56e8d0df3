// Package middleware provides HTTP middleware components for the application.
// It verifies session tokens and guards routes by role.
package middleware

import (
	"strings"

	"welfare/internal/ledger"
	"welfare/internal/models"
	"welfare/internal/utils"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const claimsKey = "claims"

// AuthMiddleware validates bearer session tokens.
type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	if secret == "" {
		panic("jwt secret is required")
	}
	return &AuthMiddleware{secret: secret}
}

// Handler validates the token and stores its claims on the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := utils.ParseSessionToken(m.secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.WithError(err).WithField("path", c.Path()).Debug("session token rejected")
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireRole lets the request through only for sessions holding one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return response.Unauthorized(c)
		}
		if !claims.HasRole(roles...) {
			log.WithFields(log.Fields{
				"actor": claims.ActorID,
				"role":  claims.Role,
				"path":  c.Path(),
			}).Warn("role not allowed")
			return response.Error(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// Claims returns the verified claims of the request, if any.
func Claims(c *fiber.Ctx) (*models.SessionClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.SessionClaims)
	return claims, ok && claims != nil
}

// Session converts the request claims into a ledger session.
func Session(c *fiber.Ctx) (ledger.Session, bool) {
	claims, ok := Claims(c)
	if !ok {
		return ledger.Session{}, false
	}
	return ledger.SessionFromClaims(claims), true
}

package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"welfare/internal/models"
	"welfare/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware(secret)
	app.Get("/me", auth.Handler, RequireRole(models.RoleEmployee), func(c *fiber.Ctx) error {
		sess, ok := Session(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.SendString(sess.EmployeeID)
	})
	return app
}

func token(t *testing.T, claims models.SessionClaims) string {
	t.Helper()
	tok, err := utils.GenerateSessionToken(secret, claims, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"wrong role", "Bearer " + token(t, models.SessionClaims{ActorID: "prt_1", Role: models.RolePartner, PartnerID: "prt_1"}), fiber.StatusForbidden},
		{"employee", "Bearer " + token(t, models.SessionClaims{ActorID: "emp_1", Role: models.RoleEmployee, EmployeeID: "emp_1"}), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequireRole(models.RolePartner), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		status int
		want   map[string]string
	}{
		{
			name: "all connected",
			checks: map[string]Check{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			status: fiber.StatusOK,
			want:   map[string]string{"database": "connected", "redis": "connected"},
		},
		{
			name: "redis down",
			checks: map[string]Check{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
			},
			status: fiber.StatusServiceUnavailable,
			want:   map[string]string{"database": "connected", "redis": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler("test", tt.checks).HealthCheck)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body struct {
				Status   string            `json:"status"`
				Services map[string]string `json:"services"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Services)
		})
	}
}

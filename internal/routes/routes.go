// Package routes defines the API routing configuration.
// It wires handlers to paths and applies the session and role guards.
package routes

import (
	"welfare/internal/handlers"
	"welfare/internal/middleware"
	"welfare/internal/models"
	"welfare/internal/services/welfare"

	"github.com/gofiber/fiber/v2"
)

const apiVersion = "1.0.0"

// Dependencies holds what the routes need from main.
type Dependencies struct {
	Welfare      welfare.Service
	JWTSecret    string
	HealthChecks map[string]handlers.Check
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(apiVersion, deps.HealthChecks)
	companyHandler := handlers.NewCompanyHandler(deps.Welfare)
	employeeHandler := handlers.NewEmployeeHandler(deps.Welfare)
	catalogHandler := handlers.NewCatalogHandler(deps.Welfare)
	voucherHandler := handlers.NewVoucherHandler(deps.Welfare)
	partnerHandler := handlers.NewPartnerHandler(deps.Welfare)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Welfare API",
			"version": apiVersion,
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTSecret)
	api := app.Group("/api", authMiddleware.Handler)

	setupCompanyRoutes(api, companyHandler)
	setupEmployeeRoutes(api, employeeHandler, voucherHandler)
	setupCatalogRoutes(api, catalogHandler)
	setupPartnerRoutes(api, partnerHandler)
}

func setupCompanyRoutes(router fiber.Router, h *handlers.CompanyHandler) {
	companies := router.Group("/companies", middleware.RequireRole(models.RoleCompanyAdmin))
	companies.Get("/:id", h.GetCompany)
	companies.Post("/:id/distributions", h.DistributePoints)
}

func setupEmployeeRoutes(router fiber.Router, h *handlers.EmployeeHandler, vh *handlers.VoucherHandler) {
	staff := middleware.RequireRole(models.RoleCompanyAdmin, models.RoleEmployee)

	employees := router.Group("/employees", staff)
	employees.Get("/:id", h.GetEmployee)
	employees.Get("/:id/transactions", h.GetTransactions)

	router.Post("/bookings", staff, vh.BookService)
	router.Post("/vouchers", staff, vh.GenerateQR)
}

func setupCatalogRoutes(router fiber.Router, h *handlers.CatalogHandler) {
	router.Get("/services", h.ListServices)
	router.Get("/services/:id", h.GetService)
}

func setupPartnerRoutes(router fiber.Router, h *handlers.PartnerHandler) {
	partners := router.Group("/partners", middleware.RequireRole(models.RolePartner))
	partners.Post("/:id/redemptions", h.Redeem)
	partners.Get("/:id/transactions", h.GetTransactions)
	partners.Post("/:id/services", h.PutService)
	partners.Put("/:id/services/:serviceId", h.PutService)
}

package handlers

import (
	"welfare/internal/ledger"
	"welfare/internal/services/welfare"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	welfareService welfare.Service
}

func NewCatalogHandler(welfareService welfare.Service) *CatalogHandler {
	return &CatalogHandler{
		welfareService: welfareService,
	}
}

// ListServices supports ?partner_id=, ?category= and ?active=true.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	filter := ledger.ServiceFilter{
		PartnerID:  c.Query("partner_id"),
		Category:   c.Query("category"),
		ActiveOnly: c.QueryBool("active", false),
	}

	services, err := h.welfareService.ListServices(c.Context(), filter)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Services retrieved", services)
}

func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.welfareService.GetService(c.Context(), c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Service retrieved", svc)
}

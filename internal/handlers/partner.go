package handlers

import (
	"welfare/internal/models"
	"welfare/internal/services/welfare"
	"welfare/internal/utils/pagination"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PartnerHandler struct {
	welfareService welfare.Service
}

func NewPartnerHandler(welfareService welfare.Service) *PartnerHandler {
	return &PartnerHandler{
		welfareService: welfareService,
	}
}

type redeemRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type serviceRequest struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"omitempty,oneof=wellness sport culture education travel"`
	PointsRequired  int64           `json:"points_required" validate:"gt=0"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Metadata        datatypes.JSON  `json:"metadata"`
	Active          *bool           `json:"active"`
}

// Redeem validates a scanned voucher payload and completes its booking.
func (h *PartnerHandler) Redeem(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req redeemRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	tx, err := h.welfareService.ValidateQR(c.Context(), sess, req.Payload, c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Voucher redeemed", tx)
}

func (h *PartnerHandler) GetTransactions(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	txs, err := h.welfareService.PartnerTransactions(c.Context(), sess, c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}

	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, txs)
	return c.JSON(pagination.Response(p, page))
}

// PutService creates (no :serviceId) or replaces a catalog entry.
func (h *PartnerHandler) PutService(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req serviceRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	svc, err := h.welfareService.PutService(c.Context(), sess, models.Service{
		ID:              fiberutils.CopyString(c.Params("serviceId")),
		PartnerID:       fiberutils.CopyString(c.Params("id")),
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		PointsRequired:  req.PointsRequired,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		Metadata:        req.Metadata,
		Active:          active,
	})
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Service saved", svc)
}

package handlers

import (
	"fmt"

	domainErrors "welfare/internal/errors"
	"welfare/internal/ledger"
	"welfare/internal/services/welfare"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	welfareService welfare.Service
}

func NewCompanyHandler(welfareService welfare.Service) *CompanyHandler {
	return &CompanyHandler{
		welfareService: welfareService,
	}
}

type distributionItem struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Points     int64  `json:"points" validate:"required,gt=0"`
}

type distributeRequest struct {
	Distributions []distributionItem `json:"distributions" validate:"required,min=1,dive"`
}

func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	company, err := h.welfareService.GetCompany(c.Context(), sess, c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Company retrieved", company)
}

// DistributePoints hands out points from the company's credits.
func (h *CompanyHandler) DistributePoints(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	if companyID := c.Params("id"); companyID != sess.CompanyID {
		return response.Domain(c, fmt.Errorf("company %s: %w", companyID, domainErrors.ErrForbidden))
	}

	var req distributeRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	dists := make([]ledger.Distribution, len(req.Distributions))
	for i, d := range req.Distributions {
		dists[i] = ledger.Distribution{EmployeeID: d.EmployeeID, Points: d.Points}
	}

	result, err := h.welfareService.DistributePoints(c.Context(), sess, dists)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Points distributed", result)
}

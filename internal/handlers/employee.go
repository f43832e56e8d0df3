package handlers

import (
	"welfare/internal/services/welfare"
	"welfare/internal/utils/pagination"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	welfareService welfare.Service
}

func NewEmployeeHandler(welfareService welfare.Service) *EmployeeHandler {
	return &EmployeeHandler{
		welfareService: welfareService,
	}
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	employee, err := h.welfareService.GetEmployee(c.Context(), sess, c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Employee retrieved", employee)
}

// GetTransactions lists the employee's bookings, newest first.
func (h *EmployeeHandler) GetTransactions(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	txs, err := h.welfareService.EmployeeTransactions(c.Context(), sess, c.Params("id"))
	if err != nil {
		return response.Domain(c, err)
	}

	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, txs)
	return c.JSON(pagination.Response(p, page))
}

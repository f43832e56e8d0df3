package handlers

import (
	"welfare/internal/services/welfare"
	"welfare/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// VoucherHandler covers the employee side: booking and QR generation.
type VoucherHandler struct {
	welfareService welfare.Service
}

func NewVoucherHandler(welfareService welfare.Service) *VoucherHandler {
	return &VoucherHandler{
		welfareService: welfareService,
	}
}

// bookingRequest is shared by bookings and vouchers. Employees may omit
// employee_id, it defaults to their own.
type bookingRequest struct {
	EmployeeID string `json:"employee_id"`
	ServiceID  string `json:"service_id" validate:"required"`
}

func (h *VoucherHandler) BookService(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req bookingRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = sess.EmployeeID
	}

	tx, err := h.welfareService.BookService(c.Context(), sess, req.EmployeeID, req.ServiceID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Created(c, "Service booked", tx)
}

// GenerateQR issues a voucher for the latest pending booking of a service.
func (h *VoucherHandler) GenerateQR(c *fiber.Ctx) error {
	sess, err := extractSession(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req bookingRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = sess.EmployeeID
	}

	issued, err := h.welfareService.GenerateQR(c.Context(), sess, req.EmployeeID, req.ServiceID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Created(c, "QR code generated", issued)
}

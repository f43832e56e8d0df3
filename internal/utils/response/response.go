package response

import (
	domainErrors "welfare/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"code":   "VALIDATION_FAILED",
		"fields": fields,
	})
}

// Domain writes err as a JSON error. Domain errors keep their code, anything
// else becomes a 500 without leaking the cause.
func Domain(c *fiber.Ctx, err error) error {
	de, ok := domainErrors.As(err)
	if !ok {
		return ServerError(c, "internal server error")
	}
	return c.Status(StatusFor(de.Code)).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code string) int {
	switch code {
	case domainErrors.ErrNotFound.Code:
		return fiber.StatusNotFound
	case domainErrors.ErrForbidden.Code:
		return fiber.StatusForbidden
	case domainErrors.ErrInsufficientCredits.Code, domainErrors.ErrInsufficientBalance.Code:
		return fiber.StatusUnprocessableEntity
	case domainErrors.ErrVoucherExpired.Code:
		return fiber.StatusGone
	case domainErrors.ErrAlreadyRedeemed.Code, domainErrors.ErrServiceLocked.Code:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

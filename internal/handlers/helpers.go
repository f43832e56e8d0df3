package handlers

import (
	"welfare/internal/ledger"
	"welfare/internal/middleware"
	"welfare/internal/utils/response"
	"welfare/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// extractSession is a helper function to reduce duplication
func extractSession(c *fiber.Ctx) (ledger.Session, error) {
	sess, ok := middleware.Session(c)
	if !ok {
		return ledger.Session{}, fiber.ErrUnauthorized
	}
	return sess, nil
}

// bind parses the JSON body into dst and validates it. On failure the error
// response has already been written and the returned error is what the
// handler should return.
func bind(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(dst); err != nil {
		if fields, ok := err.(validation.Errors); ok {
			return false, response.ValidationError(c, fields)
		}
		return false, response.BadRequest(c, err.Error())
	}
	return true, nil
}

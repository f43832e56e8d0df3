package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxLimit = 100

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest handles pagination parameters from Fiber context
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Slice returns the page of items selected by p and records the total.
func Slice[T any](p *Pagination, items []T) []T {
	p.Total = int64(len(items))
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// Response creates a standardized pagination response
func Response(p Pagination, data interface{}) fiber.Map {
	totalPages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		totalPages++
	}

	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": p.Page,
			"per_page":     p.Limit,
			"total_items":  p.Total,
			"total_pages":  totalPages,
		},
	}
}

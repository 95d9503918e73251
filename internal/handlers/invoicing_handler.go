package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/identity"
	"github.com/rotaviagem/backend/internal/services"
)

type InvoicingHandler struct {
	service *services.InvoicingService
}

func NewInvoicingHandler(service *services.InvoicingService) *InvoicingHandler {
	return &InvoicingHandler{service: service}
}

// History answers GET /invoicing/history?month=&year=. Supplying both narrows
// the answer to one bucket; non-numeric values are rejected.
func (h *InvoicingHandler) History(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var month, year *int
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "month must be numeric",
			})
		}
		month = &v
	}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "year must be numeric",
			})
		}
		year = &v
	}

	history, err := h.service.History(userID, month, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch invoicing history",
		})
	}

	return c.JSON(history)
}

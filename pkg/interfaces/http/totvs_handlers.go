package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/totvs"
)

// handleStockLevels forwards a stock level query to the ERP and relays its answer
func (s *Server) handleStockLevels(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
	}

	client := s.services.TOTVS
	if client == nil || !client.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": totvs.ErrNotConfigured.Error()})
	}

	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	body, err := client.StockLevels(c.UserContext(), totvs.ParseStockLevelQuery(values))
	if err != nil {
		var upstream *totvs.UpstreamError
		if errors.As(err, &upstream) {
			return c.Status(upstream.Status).JSON(fiber.Map{
				"error":   "TOTVS API error",
				"status":  upstream.Status,
				"message": upstream.Body,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

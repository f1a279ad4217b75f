package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

type createSiteRequest struct {
	Name   string `json:"name" validate:"required"`
	Floors int    `json:"floors" validate:"min=0"`
	Towers int    `json:"towers" validate:"min=0"`
}

func (s *Server) handleListSites(c *fiber.Ctx) error {
	sites, err := s.services.Sites.ListSitesByOwner(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return success(c, presentAll(sites, presentSite))
}

func (s *Server) handleCreateSite(c *fiber.Ctx) error {
	var req createSiteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	site, err := s.services.Sites.CreateSite(c.UserContext(), req.Name, req.Floors, req.Towers, currentUser(c))
	if err != nil {
		return invalid(err)
	}
	return created(c, presentSite(site))
}

func (s *Server) handleGetSite(c *fiber.Ctx) error {
	site, ok := c.Locals("site").(*entities.Site)
	if !ok {
		return fiber.ErrNotFound
	}
	return success(c, presentSite(site))
}

type addStockRequest struct {
	Name              string          `json:"name" validate:"required"`
	Unit              string          `json:"unit" validate:"required"`
	QuantityAvailable decimal.Decimal `json:"quantityAvailable"`
}

func (s *Server) handleListStock(c *fiber.Ctx) error {
	stock, err := s.services.Sites.ListStock(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(stock, presentStock))
}

func (s *Server) handleAddStock(c *fiber.Ctx) error {
	var req addStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	entry, err := s.services.Sites.AddStock(c.UserContext(), c.Params("siteId"), req.Name, req.Unit, req.QuantityAvailable)
	if err != nil {
		return invalid(err)
	}
	return created(c, presentStock(entry))
}

func (s *Server) handleDeleteStock(c *fiber.Ctx) error {
	if err := s.services.Sites.DeleteStock(c.UserContext(), c.Params("siteId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addKitRequest struct {
	UnitID     string                         `json:"unitId"`
	UnitNumber int                            `json:"unitNumber" validate:"min=0"`
	Name       string                         `json:"name" validate:"required"`
	Labor      []entities.LaborRequirement    `json:"labor"`
	Materials  []entities.MaterialRequirement `json:"materials"`
}

func (s *Server) handleListKits(c *fiber.Ctx) error {
	kits, err := s.services.Sites.ListKits(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(kits, presentKit))
}

func (s *Server) handleAddKit(c *fiber.Ctx) error {
	var req addKitRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	kit, err := s.services.Sites.AddKit(c.UserContext(), c.Params("siteId"), req.UnitID, req.UnitNumber, req.Name, req.Labor, req.Materials)
	if err != nil {
		return invalid(err)
	}
	return created(c, presentKit(kit))
}

func (s *Server) handleDeleteKit(c *fiber.Ctx) error {
	if err := s.services.Sites.DeleteKit(c.UserContext(), c.Params("siteId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleGetRemaining(c *fiber.Ctx) error {
	remaining, err := s.services.Sites.GetRemaining(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, remaining)
}

// handleSaveRemaining upserts a {kitId: count} map
func (s *Server) handleSaveRemaining(c *fiber.Ctx) error {
	remaining := entities.RemainingProduction{}
	if err := c.BodyParser(&remaining); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.services.Sites.SaveRemaining(c.UserContext(), c.Params("siteId"), remaining); err != nil {
		return invalid(err)
	}
	return success(c, remaining)
}

func (s *Server) handleClearRemaining(c *fiber.Ctx) error {
	if err := s.services.Sites.ClearRemaining(c.UserContext(), c.Params("siteId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

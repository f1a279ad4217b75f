package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/site"
)

type addUnitRequest struct {
	Number        int      `json:"number" validate:"min=1"`
	PredecessorID string   `json:"predecessorId"`
	StartDate     string   `json:"startDate" validate:"required"`
	EndDate       string   `json:"endDate" validate:"required"`
	Apartments    []string `json:"apartments"`
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid "+field+", expected YYYY-MM-DD")
	}
	return t, nil
}

func (s *Server) handleListUnits(c *fiber.Ctx) error {
	units, err := s.services.Sites.ListUnits(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(units, presentUnit))
}

func (s *Server) handleAddUnit(c *fiber.Ctx) error {
	var req addUnitRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return err
	}
	unit, err := s.services.Sites.AddUnit(c.UserContext(), c.Params("siteId"), req.Number, req.PredecessorID, start, end, req.Apartments)
	if err != nil {
		return invalid(err)
	}
	return created(c, presentUnit(unit))
}

func (s *Server) handleDeleteUnit(c *fiber.Ctx) error {
	if err := s.services.Sites.DeleteUnit(c.UserContext(), c.Params("siteId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type setBudgetRequest struct {
	MaterialCost decimal.Decimal `json:"materialCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
}

func (s *Server) handleListBudgets(c *fiber.Ctx) error {
	budgets, err := s.services.Sites.ListBudgets(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(budgets, presentBudget))
}

func (s *Server) handleSetBudget(c *fiber.Ctx) error {
	var req setBudgetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	budget, err := s.services.Sites.SetBudget(c.UserContext(), c.Params("siteId"), c.Params("unitId"), req.MaterialCost, req.LaborCost)
	if err != nil {
		return invalid(err)
	}
	return success(c, presentBudget(budget))
}

func (s *Server) handleDeleteBudget(c *fiber.Ctx) error {
	if err := s.services.Sites.DeleteBudget(c.UserContext(), c.Params("siteId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addUnitItemRequest struct {
	Company  string `json:"company" validate:"required"`
	Service  string `json:"service" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func (s *Server) handleListUnitItems(c *fiber.Ctx) error {
	items, err := s.services.Sites.ListUnitItems(c.UserContext(), c.Params("siteId"), c.Params("unitId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(items, presentUnitItem))
}

func (s *Server) handleAddUnitItem(c *fiber.Ctx) error {
	var req addUnitItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := s.services.Sites.AddUnitItem(c.UserContext(), c.Params("siteId"), c.Params("unitId"), req.Company, req.Service, req.Quantity)
	if err != nil {
		return invalid(err)
	}
	return created(c, presentUnitItem(item))
}

type productionRequest struct {
	UnitID     string   `json:"unitId" validate:"required"`
	Apartments []string `json:"apartments" validate:"required,min=1"`
}

func (s *Server) handleRecordProduction(c *fiber.Ctx) error {
	var req productionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	record, err := s.services.Sites.RecordProduction(c.UserContext(), c.Params("siteId"), req.UnitID, req.Apartments)
	if err != nil {
		return invalid(err)
	}
	return created(c, fiber.Map{"id": record.ID, "unitId": record.UnitID, "apartments": record.Apartments})
}

type measurementRequest struct {
	Number       string   `json:"number" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Supplier     string   `json:"supplier"`
	ContractID   string   `json:"contractId"`
	AmendmentIDs []string `json:"amendmentIds"`
	UnitID       string   `json:"unitId" validate:"required"`
	ItemIDs      []string `json:"itemIds"`
	Apartments   []string `json:"apartments" validate:"required,min=1"`
}

func (s *Server) handleRecordMeasurement(c *fiber.Ctx) error {
	var req measurementRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	record, err := s.services.Sites.RecordMeasurement(c.UserContext(), c.Params("siteId"), site.MeasurementInput{
		Number:       req.Number,
		Date:         date,
		Supplier:     req.Supplier,
		ContractID:   req.ContractID,
		AmendmentIDs: req.AmendmentIDs,
		UnitID:       req.UnitID,
		ItemIDs:      req.ItemIDs,
		Apartments:   req.Apartments,
	})
	if err != nil {
		return invalid(err)
	}
	return created(c, fiber.Map{"id": record.ID, "number": record.Number, "unitId": record.UnitID, "apartments": record.Apartments})
}

package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/inventory"
	csvexport "github.com/borderlesspc7/281-carlos/pkg/infrastructure/repositories/csv"
)

// handleAnalyzeKits runs the deficit analysis; ?policy= overrides the server default
func (s *Server) handleAnalyzeKits(c *fiber.Ctx) error {
	planner := s.services.Planning
	if name := c.Query("policy"); name != "" {
		policy, err := inventory.PolicyByName(name)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		planner = planner.WithAnalyzer(inventory.NewAnalyzer(policy))
	}

	result, err := planner.AnalyzeKits(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, result)
}

func (s *Server) handleCashFlow(c *fiber.Ctx) error {
	result, err := s.services.Planning.ProjectCashFlow(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, result)
}

// handleProgress returns the reconciliation as JSON, or as a CSV download with ?format=csv
func (s *Server) handleProgress(c *fiber.Ctx) error {
	result, err := s.services.Planning.ReconcileProgress(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}

	if c.Query("format") != "csv" {
		return success(c, result)
	}

	var buf bytes.Buffer
	if err := csvexport.WriteProgress(&buf, result.Units); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="producao-restante.csv"`)
	return c.Send(buf.Bytes())
}

func (s *Server) handleValidate(c *fiber.Ctx) error {
	result, err := s.services.Planning.ValidatePlan(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{
		"valid":              result.IsValid(),
		"errors":             result.Errors,
		"warnings":           result.Warnings,
		"duplicateKits":      result.DuplicateKits,
		"duplicateStock":     result.DuplicateStock,
		"unmatchedMaterials": result.UnmatchedMaterials,
		"hasCycles":          result.HasCycles,
	})
}

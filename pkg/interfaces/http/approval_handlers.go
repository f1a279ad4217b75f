package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/approval"
	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

type createContractRequest struct {
	Supplier string                  `json:"supplier" validate:"required"`
	Number   string                  `json:"number" validate:"required"`
	Items    []entities.ContractItem `json:"items" validate:"required,min=1"`
	Approver entities.Approver       `json:"approver"`
}

func (s *Server) handleListContracts(c *fiber.Ctx) error {
	contracts, err := s.services.Approvals.ListContracts(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(contracts, presentContract))
}

func (s *Server) handleCreateContract(c *fiber.Ctx) error {
	var req createContractRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	contract, err := s.services.Approvals.CreateContract(c.UserContext(), approval.ContractInput{
		SiteID:   c.Params("siteId"),
		Supplier: req.Supplier,
		Number:   req.Number,
		Items:    req.Items,
		Approver: req.Approver,
	})
	if err != nil {
		return invalid(err)
	}
	return created(c, presentContract(contract))
}

func (s *Server) handleListChecklists(c *fiber.Ctx) error {
	checklists, err := s.services.Approvals.ListChecklists(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return err
	}
	return success(c, presentAll(checklists, presentChecklist))
}

// handleCreateChecklist accepts a multipart form with an optional PDF in the "document" field
func (s *Server) handleCreateChecklist(c *fiber.Ctx) error {
	month, err := strconv.Atoi(c.FormValue("month"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month must be a number")
	}
	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "year must be a number")
	}

	var (
		document     []byte
		documentName string
	)
	if header, err := c.FormFile("document"); err == nil {
		file, err := header.Open()
		if err != nil {
			return err
		}
		defer file.Close()
		if document, err = io.ReadAll(file); err != nil {
			return err
		}
		documentName = header.Filename
	}

	checklist, err := s.services.Approvals.CreateChecklist(c.UserContext(), approval.ChecklistInput{
		SiteID: c.Params("siteId"),
		Month:  month,
		Year:   year,
		Notes:  c.FormValue("notes"),
		Approver: entities.Approver{
			ID:    c.FormValue("approverId"),
			Name:  c.FormValue("approverName"),
			Email: c.FormValue("approverEmail"),
		},
		Document:     document,
		DocumentName: documentName,
	})
	if err != nil {
		return invalid(err)
	}
	return created(c, presentChecklist(checklist))
}

func (s *Server) handleChecklistDocument(c *fiber.Ctx) error {
	link, err := s.services.Approvals.ChecklistDocumentURL(c.UserContext(), c.Params("siteId"), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"url": link})
}

func (s *Server) handleDeleteChecklist(c *fiber.Ctx) error {
	if err := s.services.Approvals.DeleteChecklist(c.UserContext(), c.Params("siteId"), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type decisionRequest struct {
	Token    string `json:"token" validate:"required"`
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

func (s *Server) handleDecideContract(c *fiber.Ctx) error {
	var req decisionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	contract, err := s.services.Approvals.DecideContract(c.UserContext(), c.Params("id"), req.Token, req.Approved, req.Notes)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"id": contract.ID, "status": contract.Approval.Status.String()})
}

func (s *Server) handleDecideChecklist(c *fiber.Ctx) error {
	var req decisionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	checklist, err := s.services.Approvals.DecideChecklist(c.UserContext(), c.Params("id"), req.Token, req.Approved, req.Notes)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"id": checklist.ID, "status": checklist.Approval.Status.String()})
}

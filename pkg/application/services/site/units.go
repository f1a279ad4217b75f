package site

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borderlesspc7/281-carlos/pkg/application/services/cashflow"
	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
)

// AddUnit stores a production unit; a predecessor must belong to the same site
func (s *Service) AddUnit(ctx context.Context, siteID string, number int, predecessorID string, start, end time.Time, apartments []string) (*entities.ProductionUnit, error) {
	if predecessorID != "" {
		predecessor, err := s.repos.Units.FindByID(ctx, predecessorID)
		if err != nil {
			return nil, fmt.Errorf("predecessor: %w", err)
		}
		if predecessor.SiteID != siteID {
			return nil, fmt.Errorf("predecessor %s belongs to another site", predecessorID)
		}
	}
	unit, err := entities.NewProductionUnit(newID(), siteID, number, predecessorID, start, end, apartments)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Units.Save(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *Service) ListUnits(ctx context.Context, siteID string) ([]*entities.ProductionUnit, error) {
	return s.repos.Units.ListBySite(ctx, siteID)
}

// unit loads a unit of the site; units of other sites are not found
func (s *Service) unit(ctx context.Context, siteID, unitID string) (*entities.ProductionUnit, error) {
	unit, err := s.repos.Units.FindByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("unit: %w", err)
	}
	if unit.SiteID != siteID {
		return nil, fmt.Errorf("unit %s: %w", unitID, entities.ErrNotFound)
	}
	return unit, nil
}

func (s *Service) DeleteUnit(ctx context.Context, siteID, id string) error {
	if _, err := s.unit(ctx, siteID, id); err != nil {
		return err
	}
	return s.repos.Units.Delete(ctx, id)
}

// SetBudget creates or replaces the budget of a unit and recomputes the
// weights of every budget of the site
func (s *Service) SetBudget(ctx context.Context, siteID, unitID string, materialCost, laborCost decimal.Decimal) (*entities.UnitBudget, error) {
	unit, err := s.unit(ctx, siteID, unitID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.repos.Budgets.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var budget *entities.UnitBudget
	for _, b := range budgets {
		if b.UnitID == unitID {
			budget = b
			break
		}
	}

	if budget == nil {
		budget, err = entities.NewUnitBudget(newID(), siteID, unitID, unit.Number, materialCost, laborCost)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	} else {
		updated, err := entities.NewUnitBudget(budget.ID, siteID, unitID, unit.Number, materialCost, laborCost)
		if err != nil {
			return nil, err
		}
		budget.MaterialCost = updated.MaterialCost
		budget.LaborCost = updated.LaborCost
		budget.UnitNumber = updated.UnitNumber
		budget.UpdatedAt = updated.UpdatedAt
	}

	if err := s.repos.Budgets.Save(ctx, budget); err != nil {
		return nil, err
	}
	if err := s.reweigh(ctx, siteID, budgets); err != nil {
		return nil, err
	}
	return budget, nil
}

// DeleteBudget removes a budget and recomputes the weights of the rest
func (s *Service) DeleteBudget(ctx context.Context, siteID, id string) error {
	budgets, err := s.repos.Budgets.ListBySite(ctx, siteID)
	if err != nil {
		return err
	}
	rest := make([]*entities.UnitBudget, 0, len(budgets))
	for _, b := range budgets {
		if b.ID != id {
			rest = append(rest, b)
		}
	}
	if len(rest) == len(budgets) {
		return fmt.Errorf("budget %s: %w", id, entities.ErrNotFound)
	}
	if err := s.repos.Budgets.Delete(ctx, id); err != nil {
		return err
	}
	return s.reweigh(ctx, siteID, rest)
}

func (s *Service) ListBudgets(ctx context.Context, siteID string) ([]*entities.UnitBudget, error) {
	return s.repos.Budgets.ListBySite(ctx, siteID)
}

func (s *Service) reweigh(ctx context.Context, siteID string, budgets []*entities.UnitBudget) error {
	changed := cashflow.ApplyWeights(budgets)
	for _, b := range changed {
		if err := s.repos.Budgets.Save(ctx, b); err != nil {
			return fmt.Errorf("failed to store weight of budget %s: %w", b.ID, err)
		}
	}
	if len(changed) > 0 && s.publisher != nil {
		if err := s.publisher.Publish(events.NewBudgetWeightsUpdatedEvent(siteID, len(changed))); err != nil {
			return err
		}
	}
	return nil
}

// AddUnitItem attaches a service item to a unit. The quantities of a unit's
// items may not add up to more than its apartments.
func (s *Service) AddUnitItem(ctx context.Context, siteID, unitID, company, service string, quantity int) (*entities.UnitItem, error) {
	unit, err := s.unit(ctx, siteID, unitID)
	if err != nil {
		return nil, err
	}

	item, err := entities.NewUnitItem(newID(), siteID, unit, company, service, quantity)
	if err != nil {
		return nil, err
	}

	existing, err := s.repos.UnitItems.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	used := 0
	for _, e := range existing {
		used += e.Quantity
	}
	if used+quantity > unit.ApartmentCount() {
		return nil, fmt.Errorf("%w: %d already used, %d requested, limit %d",
			entities.ErrQuantityExceedsBudget, used, quantity, unit.ApartmentCount())
	}

	if err := s.repos.UnitItems.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListUnitItems(ctx context.Context, siteID, unitID string) ([]*entities.UnitItem, error) {
	if _, err := s.unit(ctx, siteID, unitID); err != nil {
		return nil, err
	}
	return s.repos.UnitItems.ListByUnit(ctx, unitID)
}

// RecordProduction logs apartments produced in a unit
func (s *Service) RecordProduction(ctx context.Context, siteID, unitID string, apartments []string) (*entities.ProductionRecord, error) {
	if _, err := s.unit(ctx, siteID, unitID); err != nil {
		return nil, err
	}
	record, err := entities.NewProductionRecord(newID(), siteID, unitID, apartments)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Productions.SaveProduction(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// MeasurementInput carries the fields of a supplier measurement
type MeasurementInput struct {
	Number       string
	Date         time.Time
	Supplier     string
	ContractID   string
	AmendmentIDs []string
	UnitID       string
	ItemIDs      []string
	Apartments   []string
}

// RecordMeasurement logs apartments measured for payment in a unit
func (s *Service) RecordMeasurement(ctx context.Context, siteID string, in MeasurementInput) (*entities.MeasurementRecord, error) {
	if _, err := s.unit(ctx, siteID, in.UnitID); err != nil {
		return nil, err
	}
	record, err := entities.NewMeasurementRecord(newID(), siteID, in.Number, in.Date, in.Supplier, in.ContractID, in.UnitID, in.Apartments)
	if err != nil {
		return nil, err
	}
	record.AmendmentIDs = in.AmendmentIDs
	record.ItemIDs = in.ItemIDs
	if err := s.repos.Productions.SaveMeasurement(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

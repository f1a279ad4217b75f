// Package approval runs the contract and monthly checklist approval flows.
package approval

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/domain/repositories"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/events"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/storage"
)

// Service creates contracts and checklists and applies approvers' decisions
type Service struct {
	contracts  repositories.ContractRepository
	checklists repositories.ChecklistRepository
	documents  storage.DocumentStore
	publisher  events.Publisher
}

func NewService(contracts repositories.ContractRepository, checklists repositories.ChecklistRepository, documents storage.DocumentStore, publisher events.Publisher) *Service {
	return &Service{
		contracts:  contracts,
		checklists: checklists,
		documents:  documents,
		publisher:  publisher,
	}
}

// ContractInput carries the fields of a new contract
type ContractInput struct {
	SiteID   string
	Supplier string
	Number   string
	Items    []entities.ContractItem
	Approver entities.Approver
}

// CreateContract stores a contract pending approval. When the supplier
// already has a contract on the site the new one becomes an amendment of the
// most recent of them.
func (s *Service) CreateContract(ctx context.Context, in ContractInput) (*entities.Contract, error) {
	existing, err := s.contracts.ListBySupplier(ctx, in.SiteID, in.Supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to look up supplier contracts: %w", err)
	}
	originalID := ""
	if len(existing) > 0 {
		originalID = existing[len(existing)-1].ID
	}

	for i := range in.Items {
		if in.Items[i].ID == "" {
			in.Items[i].ID = uuid.NewString()
		}
	}

	contract, err := entities.NewContract(uuid.NewString(), in.SiteID, in.Supplier, in.Number, in.Items, in.Approver, originalID)
	if err != nil {
		return nil, err
	}
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}

	s.publish(events.NewContractSubmittedEvent(contract))
	return contract, nil
}

func (s *Service) ListContracts(ctx context.Context, siteID string) ([]*entities.Contract, error) {
	return s.contracts.ListBySite(ctx, siteID)
}

// DecideContract applies the approver's decision if the token matches
func (s *Service) DecideContract(ctx context.Context, id, token string, approved bool, notes string) (*entities.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := contract.Decide(token, approved, notes); err != nil {
		return nil, err
	}
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}

	s.publish(events.NewContractDecidedEvent(contract))
	return contract, nil
}

// ChecklistInput carries the fields of a new monthly checklist
type ChecklistInput struct {
	SiteID       string
	Month        int
	Year         int
	Notes        string
	Approver     entities.Approver
	Document     []byte
	DocumentName string
}

// CreateChecklist stores the checklist and, when given, its document
func (s *Service) CreateChecklist(ctx context.Context, in ChecklistInput) (*entities.MonthlyChecklist, error) {
	checklist, err := entities.NewMonthlyChecklist(uuid.NewString(), in.SiteID, in.Month, in.Year, in.Notes, in.Approver)
	if err != nil {
		return nil, err
	}

	var key string
	if len(in.Document) > 0 {
		key, err = storage.ChecklistKey(in.SiteID, checklist.ID, in.DocumentName)
		if err != nil {
			return nil, err
		}
		if err := s.documents.Put(ctx, key, in.Document, "application/pdf"); err != nil {
			return nil, fmt.Errorf("failed to store checklist document: %w", err)
		}
		checklist.DocumentKey = key
		checklist.DocumentName = in.DocumentName
	}

	if err := s.checklists.Save(ctx, checklist); err != nil {
		if key != "" {
			s.removeDocument(ctx, key)
		}
		return nil, err
	}

	s.publish(events.NewChecklistSubmittedEvent(checklist, s.documentURL(ctx, key)))
	return checklist, nil
}

func (s *Service) ListChecklists(ctx context.Context, siteID string) ([]*entities.MonthlyChecklist, error) {
	return s.checklists.ListBySite(ctx, siteID)
}

// checklist loads a checklist of the site; checklists of other sites are not found
func (s *Service) checklist(ctx context.Context, siteID, id string) (*entities.MonthlyChecklist, error) {
	checklist, err := s.checklists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checklist.SiteID != siteID {
		return nil, fmt.Errorf("checklist %s: %w", id, entities.ErrNotFound)
	}
	return checklist, nil
}

// ChecklistDocumentURL returns a download link of the checklist's document
func (s *Service) ChecklistDocumentURL(ctx context.Context, siteID, id string) (string, error) {
	checklist, err := s.checklist(ctx, siteID, id)
	if err != nil {
		return "", err
	}
	if checklist.DocumentKey == "" {
		return "", fmt.Errorf("checklist %s: %w", id, storage.ErrNotFound)
	}
	return s.documents.URL(ctx, checklist.DocumentKey)
}

// DeleteChecklist removes the checklist; a failure to remove its document is only logged
func (s *Service) DeleteChecklist(ctx context.Context, siteID, id string) error {
	checklist, err := s.checklist(ctx, siteID, id)
	if err != nil {
		return err
	}
	if err := s.checklists.Delete(ctx, id); err != nil {
		return err
	}
	if checklist.DocumentKey != "" {
		s.removeDocument(ctx, checklist.DocumentKey)
	}
	return nil
}

// DecideChecklist applies the approver's decision if the token matches
func (s *Service) DecideChecklist(ctx context.Context, id, token string, approved bool, notes string) (*entities.MonthlyChecklist, error) {
	checklist, err := s.checklists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checklist.Decide(token, approved, notes); err != nil {
		return nil, err
	}
	if err := s.checklists.Save(ctx, checklist); err != nil {
		return nil, err
	}

	s.publish(events.NewChecklistDecidedEvent(checklist, s.documentURL(ctx, checklist.DocumentKey)))
	return checklist, nil
}

func (s *Service) documentURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.documents.URL(ctx, key)
	if err != nil {
		log.Printf("approval: failed to build link for %s: %v", key, err)
		return ""
	}
	return url
}

func (s *Service) removeDocument(ctx context.Context, key string) {
	if err := s.documents.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("approval: failed to delete document %s: %v", key, err)
	}
}

// publish hands the event to the publisher; notification failures never fail the flow
func (s *Service) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		log.Printf("approval: failed to publish %s: %v", event.Type(), err)
	}
}
